// file: internals/features/messaging/channels/dto/channel_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/model"
)

// =============================
// Request DTOs
// =============================

type ChannelRequest struct {
	ChannelName        string `json:"channel_name" validate:"required,min=2,max=80"`
	ChannelSlug        string `json:"channel_slug" validate:"omitempty,max=80"`
	ChannelDescription string `json:"channel_description"`
	ChannelIsDefault   bool   `json:"channel_is_default"`
}

type ChannelUpdateRequest struct {
	ChannelName        *string `json:"channel_name" validate:"omitempty,min=2,max=80"`
	ChannelSlug        *string `json:"channel_slug" validate:"omitempty,max=80"`
	ChannelDescription *string `json:"channel_description"`
	ChannelIsDefault   *bool   `json:"channel_is_default"`
}

// =============================
// Response DTO
// =============================

type ChannelResponse struct {
	ChannelID    uuid.UUID `json:"channel_id"`
	ChannelHubID uuid.UUID `json:"channel_hub_id"`

	ChannelName        string `json:"channel_name"`
	ChannelSlug        string `json:"channel_slug"`
	ChannelDescription string `json:"channel_description,omitempty"`
	ChannelIsDefault   bool   `json:"channel_is_default"`

	ChannelCreatedBy *uuid.UUID `json:"channel_created_by,omitempty"`
	ChannelCreatedAt time.Time  `json:"channel_created_at"`
	ChannelUpdatedAt time.Time  `json:"channel_updated_at"`
}

// =============================
// Converters
// =============================

func FromModelChannel(m *model.ChannelModel) ChannelResponse {
	return ChannelResponse{
		ChannelID:          m.ChannelID,
		ChannelHubID:       m.ChannelHubID,
		ChannelName:        m.ChannelName,
		ChannelSlug:        m.ChannelSlug,
		ChannelDescription: valOrEmpty(m.ChannelDescription),
		ChannelIsDefault:   m.ChannelIsDefault,
		ChannelCreatedBy:   m.ChannelCreatedBy,
		ChannelCreatedAt:   m.ChannelCreatedAt,
		ChannelUpdatedAt:   m.ChannelUpdatedAt,
	}
}

func (r *ChannelRequest) ToModelChannel(hubID, createdBy uuid.UUID) *model.ChannelModel {
	return &model.ChannelModel{
		ChannelHubID:       hubID,
		ChannelName:        strings.TrimSpace(r.ChannelName),
		ChannelDescription: optStr(r.ChannelDescription),
		ChannelIsDefault:   r.ChannelIsDefault,
		ChannelCreatedBy:   &createdBy,
	}
}

// ApplyChannelUpdate copies the set fields onto the model and reports
// whether anything changed. Slug and default handling stay in the
// controller (both need the DB).
func ApplyChannelUpdate(m *model.ChannelModel, r *ChannelUpdateRequest) bool {
	changed := false

	if r.ChannelName != nil {
		if v := strings.TrimSpace(*r.ChannelName); v != "" && v != m.ChannelName {
			m.ChannelName = v
			changed = true
		}
	}
	if r.ChannelDescription != nil {
		m.ChannelDescription = optStr(*r.ChannelDescription)
		changed = true
	}

	return changed
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
