// file: internals/features/attendance/records/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

var AttendanceStatuses = []string{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusLate,
	AttendanceStatusExcused,
}

func ValidAttendanceStatus(s string) bool {
	for _, st := range AttendanceStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// AttendanceModel represents the attendance_records table. One row per
// athlete per event; re-marking updates the row in place.
type AttendanceModel struct {
	// PK
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`

	// Tenant
	AttendanceHubID uuid.UUID `gorm:"type:uuid;not null;index" json:"attendance_hub_id"`

	// The unique pair; bulk upsert conflicts on it.
	AttendanceEventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_event_athlete" json:"attendance_event_id"`
	AttendanceAthleteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_event_athlete;index" json:"attendance_athlete_id"`

	// Mark
	AttendanceStatus string  `gorm:"type:varchar(10);not null" json:"attendance_status"`
	AttendanceNote   *string `gorm:"type:text" json:"attendance_note,omitempty"`

	// Provenance
	AttendanceRecordedBy *uuid.UUID `gorm:"type:uuid" json:"attendance_recorded_by,omitempty"`

	// Audit
	AttendanceCreatedAt time.Time      `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time      `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
	AttendanceDeletedAt gorm.DeletedAt `gorm:"column:attendance_deleted_at;index" json:"attendance_deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendance_records" }
