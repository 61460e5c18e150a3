// file: internals/features/messaging/messages/model/message_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageModel represents the messages table (one post in a channel).
type MessageModel struct {
	// PK
	MessageID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"message_id"`

	// Tenant
	MessageHubID uuid.UUID `gorm:"type:uuid;not null;index" json:"message_hub_id"`

	// Placement; the channel feed reads newest-first on this pair.
	MessageChannelID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_channel_created,priority:1" json:"message_channel_id"`

	// Sender
	MessageSenderUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"message_sender_user_id"`

	// Content
	MessageBody          string  `gorm:"type:text;not null" json:"message_body"`
	MessageAttachmentURL *string `gorm:"type:text" json:"message_attachment_url,omitempty"`

	// Moderation
	MessageIsPinned bool `gorm:"not null;default:false" json:"message_is_pinned"`

	// Audit
	MessageCreatedAt time.Time      `gorm:"column:message_created_at;autoCreateTime;index:idx_messages_channel_created,priority:2,sort:desc" json:"message_created_at"`
	MessageUpdatedAt time.Time      `gorm:"column:message_updated_at;autoUpdateTime" json:"message_updated_at"`
	MessageDeletedAt gorm.DeletedAt `gorm:"column:message_deleted_at;index" json:"message_deleted_at,omitempty"`
}

func (MessageModel) TableName() string { return "messages" }
