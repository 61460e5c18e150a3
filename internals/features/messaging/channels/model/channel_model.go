// file: internals/features/messaging/channels/model/channel_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChannelModel represents the channels table (one hub chat room).
type ChannelModel struct {
	// PK
	ChannelID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"channel_id"`

	// Tenant
	ChannelHubID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_channels_hub_slug" json:"channel_hub_id"`

	// Content
	ChannelName        string  `gorm:"type:varchar(80);not null" json:"channel_name"`
	ChannelSlug        string  `gorm:"type:varchar(80);not null;uniqueIndex:uq_channels_hub_slug" json:"channel_slug"`
	ChannelDescription *string `gorm:"type:text" json:"channel_description,omitempty"`

	// At most one default channel per hub; new members land there.
	ChannelIsDefault bool `gorm:"not null;default:false" json:"channel_is_default"`

	// Provenance
	ChannelCreatedBy *uuid.UUID `gorm:"type:uuid" json:"channel_created_by,omitempty"`

	// Audit
	ChannelCreatedAt time.Time      `gorm:"column:channel_created_at;autoCreateTime" json:"channel_created_at"`
	ChannelUpdatedAt time.Time      `gorm:"column:channel_updated_at;autoUpdateTime" json:"channel_updated_at"`
	ChannelDeletedAt gorm.DeletedAt `gorm:"column:channel_deleted_at;index" json:"channel_deleted_at,omitempty"`
}

func (ChannelModel) TableName() string { return "channels" }
