// file: internals/features/hubs/members/model/hub_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HubMemberModel represents the hub_members table.
// One row per user per hub; the role lives here, not on users.
type HubMemberModel struct {
	// PK
	HubMemberID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"hub_member_id"`

	// Relations (unique pair while alive)
	HubMemberHubID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hub_members_hub_user" json:"hub_member_hub_id"`
	HubMemberUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hub_members_hub_user;index" json:"hub_member_user_id"`

	// Role inside this hub: owner|director|admin|coach|parent|gymnast
	HubMemberRole string `gorm:"type:varchar(20);not null;default:'parent'" json:"hub_member_role"`

	// Status
	HubMemberIsActive bool `gorm:"not null;default:true" json:"hub_member_is_active"`

	// Audit
	HubMemberCreatedAt time.Time      `gorm:"column:hub_member_created_at;autoCreateTime" json:"hub_member_created_at"`
	HubMemberUpdatedAt time.Time      `gorm:"column:hub_member_updated_at;autoUpdateTime" json:"hub_member_updated_at"`
	HubMemberDeletedAt gorm.DeletedAt `gorm:"column:hub_member_deleted_at;index" json:"hub_member_deleted_at,omitempty"`
}

func (HubMemberModel) TableName() string { return "hub_members" }
