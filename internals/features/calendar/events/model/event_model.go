// file: internals/features/calendar/events/model/event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event categories shown on the calendar.
const (
	EventCategoryPractice = "practice"
	EventCategoryMeet     = "meet"
	EventCategorySocial   = "social"
	EventCategoryOther    = "other"
)

var EventCategories = []string{
	EventCategoryPractice,
	EventCategoryMeet,
	EventCategorySocial,
	EventCategoryOther,
}

func ValidEventCategory(s string) bool {
	for _, c := range EventCategories {
		if s == c {
			return true
		}
	}
	return false
}

// EventModel represents the events table (one hub calendar entry).
type EventModel struct {
	// PK
	EventID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`

	// Tenant
	EventHubID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_events_hub_slug" json:"event_hub_id"`

	// Content
	EventTitle       string  `gorm:"type:varchar(150);not null" json:"event_title"`
	EventSlug        string  `gorm:"type:varchar(150);not null;uniqueIndex:uq_events_hub_slug" json:"event_slug"`
	EventDescription *string `gorm:"type:text" json:"event_description,omitempty"`
	EventLocation    *string `gorm:"type:varchar(200)" json:"event_location,omitempty"`
	EventCategory    string  `gorm:"type:varchar(20);not null;default:'other'" json:"event_category"`

	// Schedule
	EventStartsAt time.Time  `gorm:"type:timestamptz;not null;index" json:"event_starts_at"`
	EventEndsAt   *time.Time `gorm:"type:timestamptz" json:"event_ends_at,omitempty"`
	EventAllDay   bool       `gorm:"not null;default:false" json:"event_all_day"`

	// Provenance
	EventCreatedBy *uuid.UUID `gorm:"type:uuid" json:"event_created_by,omitempty"`

	// Audit
	EventCreatedAt time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string { return "events" }
