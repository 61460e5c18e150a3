// file: internals/features/messaging/messages/dto/message_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/model"
)

// =============================
// Request DTOs
// =============================

type MessageRequest struct {
	MessageBody          string `json:"message_body" validate:"required,min=1,max=4000"`
	MessageAttachmentURL string `json:"message_attachment_url" validate:"omitempty,url"`
}

type MessageUpdateRequest struct {
	MessageBody *string `json:"message_body" validate:"omitempty,min=1,max=4000"`
}

// =============================
// Response DTOs
// =============================

type MessageResponse struct {
	MessageID        uuid.UUID `json:"message_id"`
	MessageHubID     uuid.UUID `json:"message_hub_id"`
	MessageChannelID uuid.UUID `json:"message_channel_id"`

	MessageSenderUserID uuid.UUID `json:"message_sender_user_id"`
	SenderName          string    `json:"sender_name,omitempty"`

	MessageBody          string `json:"message_body"`
	MessageAttachmentURL string `json:"message_attachment_url,omitempty"`
	MessageIsPinned      bool   `json:"message_is_pinned"`

	MessageCreatedAt time.Time `json:"message_created_at"`
	MessageUpdatedAt time.Time `json:"message_updated_at"`
}

// =============================
// Converters
// =============================

func FromModelMessage(m *model.MessageModel) MessageResponse {
	return MessageResponse{
		MessageID:            m.MessageID,
		MessageHubID:         m.MessageHubID,
		MessageChannelID:     m.MessageChannelID,
		MessageSenderUserID:  m.MessageSenderUserID,
		MessageBody:          m.MessageBody,
		MessageAttachmentURL: valOrEmpty(m.MessageAttachmentURL),
		MessageIsPinned:      m.MessageIsPinned,
		MessageCreatedAt:     m.MessageCreatedAt,
		MessageUpdatedAt:     m.MessageUpdatedAt,
	}
}

func (r *MessageRequest) ToModelMessage(hubID, channelID, senderID uuid.UUID) *model.MessageModel {
	return &model.MessageModel{
		MessageHubID:         hubID,
		MessageChannelID:     channelID,
		MessageSenderUserID:  senderID,
		MessageBody:          strings.TrimSpace(r.MessageBody),
		MessageAttachmentURL: optStr(r.MessageAttachmentURL),
	}
}

// =============================
// Small helpers
// =============================

func valOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
