// file: internals/features/assignments/templates/model/assignment_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template kinds. A checklist is a plain ordered list of tasks, a
// stations template adds a per-item duration for circuit rotations.
const (
	AssignmentKindChecklist = "checklist"
	AssignmentKindStations  = "stations"
)

var AssignmentKinds = []string{
	AssignmentKindChecklist,
	AssignmentKindStations,
}

func ValidAssignmentKind(s string) bool {
	for _, k := range AssignmentKinds {
		if s == k {
			return true
		}
	}
	return false
}

// AssignmentTemplateModel represents the assignment_templates table
// (one reusable practice plan).
type AssignmentTemplateModel struct {
	// PK
	AssignmentTemplateID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_template_id"`

	// Tenant
	AssignmentTemplateHubID uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_template_hub_id"`

	// Content
	AssignmentTemplateTitle       string  `gorm:"type:varchar(150);not null" json:"assignment_template_title"`
	AssignmentTemplateKind        string  `gorm:"type:varchar(20);not null;default:'checklist'" json:"assignment_template_kind"`
	AssignmentTemplateDescription *string `gorm:"type:text" json:"assignment_template_description,omitempty"`

	// Provenance
	AssignmentTemplateCreatedBy *uuid.UUID `gorm:"type:uuid" json:"assignment_template_created_by,omitempty"`

	// Audit
	AssignmentTemplateCreatedAt time.Time      `gorm:"column:assignment_template_created_at;autoCreateTime" json:"assignment_template_created_at"`
	AssignmentTemplateUpdatedAt time.Time      `gorm:"column:assignment_template_updated_at;autoUpdateTime" json:"assignment_template_updated_at"`
	AssignmentTemplateDeletedAt gorm.DeletedAt `gorm:"column:assignment_template_deleted_at;index" json:"assignment_template_deleted_at,omitempty"`
}

func (AssignmentTemplateModel) TableName() string { return "assignment_templates" }
