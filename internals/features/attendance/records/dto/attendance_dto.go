// file: internals/features/attendance/records/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/attendance/records/model"
)

// =============================
// Request DTOs
// =============================

type AttendanceMarkRequest struct {
	AttendanceAthleteID uuid.UUID `json:"attendance_athlete_id" validate:"required"`
	AttendanceStatus    string    `json:"attendance_status" validate:"required,oneof=present absent late excused"`
	AttendanceNote      string    `json:"attendance_note" validate:"omitempty,max=500"`
}

// AttendanceBulkRequest marks a whole event in one call. A repeated
// athlete id keeps the last mark.
type AttendanceBulkRequest struct {
	Records []AttendanceMarkRequest `json:"records" validate:"required,min=1,max=200,dive"`
}

type AttendanceUpdateRequest struct {
	AttendanceStatus *string `json:"attendance_status" validate:"omitempty,oneof=present absent late excused"`
	AttendanceNote   *string `json:"attendance_note" validate:"omitempty,max=500"`
}

// =============================
// Response DTOs
// =============================

type AttendanceResponse struct {
	AttendanceID    uuid.UUID `json:"attendance_id"`
	AttendanceHubID uuid.UUID `json:"attendance_hub_id"`

	AttendanceEventID   uuid.UUID `json:"attendance_event_id"`
	AttendanceAthleteID uuid.UUID `json:"attendance_athlete_id"`
	AthleteName         string    `json:"athlete_name,omitempty"`

	AttendanceStatus string `json:"attendance_status"`
	AttendanceNote   string `json:"attendance_note,omitempty"`

	AttendanceRecordedBy *uuid.UUID `json:"attendance_recorded_by,omitempty"`
	AttendanceCreatedAt  time.Time  `json:"attendance_created_at"`
	AttendanceUpdatedAt  time.Time  `json:"attendance_updated_at"`
}

// AttendanceHistoryEntry is one row of an athlete's history with the
// event it belongs to.
type AttendanceHistoryEntry struct {
	AttendanceResponse
	EventTitle    string    `json:"event_title"`
	EventStartsAt time.Time `json:"event_starts_at"`
}

// AttendanceSummary is the per-event roll-up.
type AttendanceSummary struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Excused int64 `json:"excused"`
}

// =============================
// Converters
// =============================

func FromModelAttendance(m *model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:         m.AttendanceID,
		AttendanceHubID:      m.AttendanceHubID,
		AttendanceEventID:    m.AttendanceEventID,
		AttendanceAthleteID:  m.AttendanceAthleteID,
		AttendanceStatus:     m.AttendanceStatus,
		AttendanceNote:       valOrEmpty(m.AttendanceNote),
		AttendanceRecordedBy: m.AttendanceRecordedBy,
		AttendanceCreatedAt:  m.AttendanceCreatedAt,
		AttendanceUpdatedAt:  m.AttendanceUpdatedAt,
	}
}

func (r *AttendanceMarkRequest) ToModelAttendance(hubID, eventID, recordedBy uuid.UUID) model.AttendanceModel {
	return model.AttendanceModel{
		AttendanceHubID:      hubID,
		AttendanceEventID:    eventID,
		AttendanceAthleteID:  r.AttendanceAthleteID,
		AttendanceStatus:     strings.ToLower(strings.TrimSpace(r.AttendanceStatus)),
		AttendanceNote:       optStr(r.AttendanceNote),
		AttendanceRecordedBy: &recordedBy,
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
