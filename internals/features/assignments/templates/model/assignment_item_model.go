// file: internals/features/assignments/templates/model/assignment_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentItemModel represents the assignment_items table (one line
// of a template, ordered by position starting at 1).
type AssignmentItemModel struct {
	// PK
	AssignmentItemID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_item_id"`

	// Parent
	AssignmentItemTemplateID uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_item_template_id"`
	AssignmentItemHubID      uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_item_hub_id"`

	// Order within the template
	AssignmentItemPosition int `gorm:"not null;default:1" json:"assignment_item_position"`

	// Content
	AssignmentItemLabel   string  `gorm:"type:varchar(150);not null" json:"assignment_item_label"`
	AssignmentItemDetails *string `gorm:"type:text" json:"assignment_item_details,omitempty"`

	// Stations only; NULL on checklist items.
	AssignmentItemDurationMinutes *int `json:"assignment_item_duration_minutes,omitempty"`

	// Audit
	AssignmentItemCreatedAt time.Time      `gorm:"column:assignment_item_created_at;autoCreateTime" json:"assignment_item_created_at"`
	AssignmentItemUpdatedAt time.Time      `gorm:"column:assignment_item_updated_at;autoUpdateTime" json:"assignment_item_updated_at"`
	AssignmentItemDeletedAt gorm.DeletedAt `gorm:"column:assignment_item_deleted_at;index" json:"assignment_item_deleted_at,omitempty"`
}

func (AssignmentItemModel) TableName() string { return "assignment_items" }
