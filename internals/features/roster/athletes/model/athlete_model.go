// file: internals/features/roster/athletes/model/athlete_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AthleteModel represents the athletes table (the hub roster).
// Athletes are usually minors; the guardian link is what parents
// use to see their own kids, the optional user link is for athletes
// old enough to have their own login.
type AthleteModel struct {
	// PK
	AthleteID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"athlete_id"`

	// Tenant
	AthleteHubID uuid.UUID `gorm:"type:uuid;not null;index" json:"athlete_hub_id"`

	// Links
	AthleteUserID         *uuid.UUID `gorm:"type:uuid;index" json:"athlete_user_id,omitempty"`
	AthleteGuardianUserID *uuid.UUID `gorm:"type:uuid;index" json:"athlete_guardian_user_id,omitempty"`

	// Identity
	AthleteFirstName string     `gorm:"type:varchar(60);not null" json:"athlete_first_name"`
	AthleteLastName  string     `gorm:"type:varchar(60);not null" json:"athlete_last_name"`
	AthleteBirthDate *time.Time `gorm:"type:date" json:"athlete_birth_date,omitempty"`
	AthleteLevel     *string    `gorm:"type:varchar(40)" json:"athlete_level,omitempty"`

	// Guardian contact (denormalized; the guardian may have no account)
	AthleteGuardianName  *string `gorm:"type:varchar(100)" json:"athlete_guardian_name,omitempty"`
	AthleteGuardianPhone *string `gorm:"type:varchar(30)" json:"athlete_guardian_phone,omitempty"`
	AthleteGuardianEmail *string `gorm:"type:varchar(255)" json:"athlete_guardian_email,omitempty"`

	// Medical
	AthleteMedicalNotes *string `gorm:"type:text" json:"athlete_medical_notes,omitempty"`

	// Status
	AthleteIsActive bool `gorm:"not null;default:true" json:"athlete_is_active"`

	// Audit
	AthleteCreatedAt time.Time      `gorm:"column:athlete_created_at;autoCreateTime" json:"athlete_created_at"`
	AthleteUpdatedAt time.Time      `gorm:"column:athlete_updated_at;autoUpdateTime" json:"athlete_updated_at"`
	AthleteDeletedAt gorm.DeletedAt `gorm:"column:athlete_deleted_at;index" json:"athlete_deleted_at,omitempty"`
}

func (AthleteModel) TableName() string { return "athletes" }
