// file: internals/features/hubs/hub/model/hub_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HubModel represents the hubs table (one row per club/team tenant)
type HubModel struct {
	// PK
	HubID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"hub_id"`

	// Identity
	HubName        string  `gorm:"type:varchar(100);not null" json:"hub_name"`
	HubSlug        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"hub_slug"`
	HubSport       string  `gorm:"type:varchar(50);not null;default:'gymnastics'" json:"hub_sport"`
	HubDescription *string `gorm:"type:text" json:"hub_description,omitempty"`
	HubLocation    *string `gorm:"type:text" json:"hub_location,omitempty"`

	// Media (two-phase delete: old file parks in trash until the reaper runs)
	HubLogoURL                *string    `gorm:"type:text" json:"hub_logo_url,omitempty"`
	HubLogoTrashURL           *string    `gorm:"type:text" json:"hub_logo_trash_url,omitempty"`
	HubLogoDeletePendingUntil *time.Time `gorm:"type:timestamp" json:"hub_logo_delete_pending_until,omitempty"`

	// Links
	HubWebsiteURL   *string `gorm:"type:text" json:"hub_website_url,omitempty"`
	HubInstagramURL *string `gorm:"type:text" json:"hub_instagram_url,omitempty"`
	HubFacebookURL  *string `gorm:"type:text" json:"hub_facebook_url,omitempty"`

	// Scheduling context (IANA zone, drives the hub calendar)
	HubTimezone string `gorm:"type:varchar(64);not null;default:'America/New_York'" json:"hub_timezone"`

	// Per-role feature scopes, NULL means role-class defaults apply
	HubPermissions datatypes.JSON `gorm:"type:jsonb" json:"hub_permissions,omitempty"`

	// Status
	HubIsActive   bool `gorm:"not null;default:true" json:"hub_is_active"`
	HubIsVerified bool `gorm:"not null;default:false" json:"hub_is_verified"`

	// Full-text search (generated column; read-only)
	HubSearch string `gorm:"type:tsvector;->;<-:false" json:"-"`

	// Audit
	HubCreatedAt time.Time      `gorm:"column:hub_created_at;autoCreateTime" json:"hub_created_at"`
	HubUpdatedAt time.Time      `gorm:"column:hub_updated_at;autoUpdateTime" json:"hub_updated_at"`
	HubDeletedAt gorm.DeletedAt `gorm:"column:hub_deleted_at;index" json:"hub_deleted_at,omitempty"`
}

func (HubModel) TableName() string { return "hubs" }
