// file: internals/features/calendar/events/dto/event_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/model"
)

// =============================
// Request DTOs
// =============================

type EventRequest struct {
	EventTitle       string `json:"event_title" validate:"required,min=3,max=150"`
	EventSlug        string `json:"event_slug" validate:"omitempty,max=150"`
	EventDescription string `json:"event_description"`
	EventLocation    string `json:"event_location" validate:"omitempty,max=200"`
	EventCategory    string `json:"event_category" validate:"omitempty,oneof=practice meet social other"`

	EventStartsAt time.Time  `json:"event_starts_at" validate:"required"`
	EventEndsAt   *time.Time `json:"event_ends_at"`
	EventAllDay   bool       `json:"event_all_day"`
}

// EventUpdateRequest: nil means leave the field alone. A pointer to ""
// clears the nullable text columns.
type EventUpdateRequest struct {
	EventTitle       *string `json:"event_title" validate:"omitempty,min=3,max=150"`
	EventSlug        *string `json:"event_slug" validate:"omitempty,max=150"`
	EventDescription *string `json:"event_description"`
	EventLocation    *string `json:"event_location" validate:"omitempty,max=200"`
	EventCategory    *string `json:"event_category" validate:"omitempty,oneof=practice meet social other"`

	EventStartsAt *time.Time `json:"event_starts_at"`
	EventEndsAt   *time.Time `json:"event_ends_at"`
	EventAllDay   *bool      `json:"event_all_day"`
}

// =============================
// Response DTO
// =============================

type EventResponse struct {
	EventID    uuid.UUID `json:"event_id"`
	EventHubID uuid.UUID `json:"event_hub_id"`

	EventTitle       string `json:"event_title"`
	EventSlug        string `json:"event_slug"`
	EventDescription string `json:"event_description,omitempty"`
	EventLocation    string `json:"event_location,omitempty"`
	EventCategory    string `json:"event_category"`

	EventStartsAt time.Time  `json:"event_starts_at"`
	EventEndsAt   *time.Time `json:"event_ends_at,omitempty"`
	EventAllDay   bool       `json:"event_all_day"`

	EventCreatedBy *uuid.UUID `json:"event_created_by,omitempty"`
	EventCreatedAt time.Time  `json:"event_created_at"`
	EventUpdatedAt time.Time  `json:"event_updated_at"`
}

// =============================
// Converters
// =============================

func FromModelEvent(m *model.EventModel) EventResponse {
	return EventResponse{
		EventID:          m.EventID,
		EventHubID:       m.EventHubID,
		EventTitle:       m.EventTitle,
		EventSlug:        m.EventSlug,
		EventDescription: valOrEmpty(m.EventDescription),
		EventLocation:    valOrEmpty(m.EventLocation),
		EventCategory:    m.EventCategory,
		EventStartsAt:    m.EventStartsAt,
		EventEndsAt:      m.EventEndsAt,
		EventAllDay:      m.EventAllDay,
		EventCreatedBy:   m.EventCreatedBy,
		EventCreatedAt:   m.EventCreatedAt,
		EventUpdatedAt:   m.EventUpdatedAt,
	}
}

func (r *EventRequest) ToModelEvent(hubID, createdBy uuid.UUID) *model.EventModel {
	category := strings.ToLower(strings.TrimSpace(r.EventCategory))
	if !model.ValidEventCategory(category) {
		category = model.EventCategoryOther
	}
	return &model.EventModel{
		EventHubID:       hubID,
		EventTitle:       strings.TrimSpace(r.EventTitle),
		EventDescription: optStr(r.EventDescription),
		EventLocation:    optStr(r.EventLocation),
		EventCategory:    category,
		EventStartsAt:    r.EventStartsAt,
		EventEndsAt:      r.EventEndsAt,
		EventAllDay:      r.EventAllDay,
		EventCreatedBy:   &createdBy,
	}
}

// ApplyEventUpdate copies the set fields onto the model and reports
// whether anything changed. Slug changes are handled by the controller
// because re-uniquing needs the DB.
func ApplyEventUpdate(m *model.EventModel, r *EventUpdateRequest) bool {
	changed := false

	if r.EventTitle != nil {
		if v := strings.TrimSpace(*r.EventTitle); v != "" && v != m.EventTitle {
			m.EventTitle = v
			changed = true
		}
	}
	if r.EventDescription != nil {
		m.EventDescription = optStr(*r.EventDescription)
		changed = true
	}
	if r.EventLocation != nil {
		m.EventLocation = optStr(*r.EventLocation)
		changed = true
	}
	if r.EventCategory != nil {
		if v := strings.ToLower(strings.TrimSpace(*r.EventCategory)); model.ValidEventCategory(v) && v != m.EventCategory {
			m.EventCategory = v
			changed = true
		}
	}
	if r.EventStartsAt != nil && !r.EventStartsAt.IsZero() && !m.EventStartsAt.Equal(*r.EventStartsAt) {
		m.EventStartsAt = *r.EventStartsAt
		changed = true
	}
	if r.EventEndsAt != nil {
		if r.EventEndsAt.IsZero() {
			if m.EventEndsAt != nil {
				m.EventEndsAt = nil
				changed = true
			}
		} else if m.EventEndsAt == nil || !m.EventEndsAt.Equal(*r.EventEndsAt) {
			m.EventEndsAt = r.EventEndsAt
			changed = true
		}
	}
	if r.EventAllDay != nil && m.EventAllDay != *r.EventAllDay {
		m.EventAllDay = *r.EventAllDay
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
