// file: internals/features/roster/athletes/dto/athlete_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/model"
)

const birthDateLayout = "2006-01-02"

// =============================
// Request DTOs
// =============================

type AthleteRequest struct {
	AthleteUserID         *uuid.UUID `json:"athlete_user_id"`
	AthleteGuardianUserID *uuid.UUID `json:"athlete_guardian_user_id"`

	AthleteFirstName string `json:"athlete_first_name" validate:"required,min=1,max=60"`
	AthleteLastName  string `json:"athlete_last_name" validate:"required,min=1,max=60"`
	AthleteBirthDate string `json:"athlete_birth_date" validate:"omitempty,datetime=2006-01-02"`
	AthleteLevel     string `json:"athlete_level" validate:"omitempty,max=40"`

	AthleteGuardianName  string `json:"athlete_guardian_name" validate:"omitempty,max=100"`
	AthleteGuardianPhone string `json:"athlete_guardian_phone" validate:"omitempty,max=30"`
	AthleteGuardianEmail string `json:"athlete_guardian_email" validate:"omitempty,email,max=255"`

	AthleteMedicalNotes string `json:"athlete_medical_notes"`
}

// AthleteUpdateRequest uses pointers so we can tell "absent" from
// "set to empty". A pointer to "" clears the column.
type AthleteUpdateRequest struct {
	AthleteUserID         *uuid.UUID `json:"athlete_user_id"`
	AthleteGuardianUserID *uuid.UUID `json:"athlete_guardian_user_id"`

	AthleteFirstName *string `json:"athlete_first_name" validate:"omitempty,min=1,max=60"`
	AthleteLastName  *string `json:"athlete_last_name" validate:"omitempty,min=1,max=60"`
	AthleteBirthDate *string `json:"athlete_birth_date" validate:"omitempty,datetime=2006-01-02"`
	AthleteLevel     *string `json:"athlete_level" validate:"omitempty,max=40"`

	AthleteGuardianName  *string `json:"athlete_guardian_name" validate:"omitempty,max=100"`
	AthleteGuardianPhone *string `json:"athlete_guardian_phone" validate:"omitempty,max=30"`
	AthleteGuardianEmail *string `json:"athlete_guardian_email" validate:"omitempty,email,max=255"`

	AthleteMedicalNotes *string `json:"athlete_medical_notes"`
	AthleteIsActive     *bool   `json:"athlete_is_active"`
}

// =============================
// Response DTO
// =============================

type AthleteResponse struct {
	AthleteID    uuid.UUID `json:"athlete_id"`
	AthleteHubID uuid.UUID `json:"athlete_hub_id"`

	AthleteUserID         *uuid.UUID `json:"athlete_user_id,omitempty"`
	AthleteGuardianUserID *uuid.UUID `json:"athlete_guardian_user_id,omitempty"`

	AthleteFirstName string `json:"athlete_first_name"`
	AthleteLastName  string `json:"athlete_last_name"`
	AthleteBirthDate string `json:"athlete_birth_date,omitempty"`
	AthleteLevel     string `json:"athlete_level,omitempty"`

	AthleteGuardianName  string `json:"athlete_guardian_name,omitempty"`
	AthleteGuardianPhone string `json:"athlete_guardian_phone,omitempty"`
	AthleteGuardianEmail string `json:"athlete_guardian_email,omitempty"`

	AthleteMedicalNotes string `json:"athlete_medical_notes,omitempty"`
	AthleteIsActive     bool   `json:"athlete_is_active"`

	AthleteCreatedAt time.Time `json:"athlete_created_at"`
	AthleteUpdatedAt time.Time `json:"athlete_updated_at"`
}

// =============================
// Converters
// =============================

func FromModelAthlete(m *model.AthleteModel) AthleteResponse {
	resp := AthleteResponse{
		AthleteID:             m.AthleteID,
		AthleteHubID:          m.AthleteHubID,
		AthleteUserID:         m.AthleteUserID,
		AthleteGuardianUserID: m.AthleteGuardianUserID,
		AthleteFirstName:      m.AthleteFirstName,
		AthleteLastName:       m.AthleteLastName,
		AthleteLevel:          valOrEmpty(m.AthleteLevel),
		AthleteGuardianName:   valOrEmpty(m.AthleteGuardianName),
		AthleteGuardianPhone:  valOrEmpty(m.AthleteGuardianPhone),
		AthleteGuardianEmail:  valOrEmpty(m.AthleteGuardianEmail),
		AthleteMedicalNotes:   valOrEmpty(m.AthleteMedicalNotes),
		AthleteIsActive:       m.AthleteIsActive,
		AthleteCreatedAt:      m.AthleteCreatedAt,
		AthleteUpdatedAt:      m.AthleteUpdatedAt,
	}
	if m.AthleteBirthDate != nil {
		resp.AthleteBirthDate = m.AthleteBirthDate.Format(birthDateLayout)
	}
	return resp
}

func (r *AthleteRequest) ToModelAthlete(hubID uuid.UUID) *model.AthleteModel {
	m := &model.AthleteModel{
		AthleteHubID:          hubID,
		AthleteUserID:         r.AthleteUserID,
		AthleteGuardianUserID: r.AthleteGuardianUserID,
		AthleteFirstName:      strings.TrimSpace(r.AthleteFirstName),
		AthleteLastName:       strings.TrimSpace(r.AthleteLastName),
		AthleteLevel:          optStr(r.AthleteLevel),
		AthleteGuardianName:   optStr(r.AthleteGuardianName),
		AthleteGuardianPhone:  optStr(r.AthleteGuardianPhone),
		AthleteGuardianEmail:  optStr(strings.ToLower(r.AthleteGuardianEmail)),
		AthleteMedicalNotes:   optStr(r.AthleteMedicalNotes),
		AthleteIsActive:       true,
	}
	if bd, err := time.Parse(birthDateLayout, r.AthleteBirthDate); err == nil && r.AthleteBirthDate != "" {
		m.AthleteBirthDate = &bd
	}
	return m
}

// ApplyAthleteUpdate copies the set fields onto the model and reports
// whether anything actually changed.
func ApplyAthleteUpdate(m *model.AthleteModel, r *AthleteUpdateRequest) bool {
	changed := false

	if r.AthleteUserID != nil && !uuidEq(m.AthleteUserID, r.AthleteUserID) {
		m.AthleteUserID = nilIfZeroUUID(r.AthleteUserID)
		changed = true
	}
	if r.AthleteGuardianUserID != nil && !uuidEq(m.AthleteGuardianUserID, r.AthleteGuardianUserID) {
		m.AthleteGuardianUserID = nilIfZeroUUID(r.AthleteGuardianUserID)
		changed = true
	}
	if r.AthleteFirstName != nil {
		if v := strings.TrimSpace(*r.AthleteFirstName); v != "" && v != m.AthleteFirstName {
			m.AthleteFirstName = v
			changed = true
		}
	}
	if r.AthleteLastName != nil {
		if v := strings.TrimSpace(*r.AthleteLastName); v != "" && v != m.AthleteLastName {
			m.AthleteLastName = v
			changed = true
		}
	}
	if r.AthleteBirthDate != nil {
		if *r.AthleteBirthDate == "" {
			if m.AthleteBirthDate != nil {
				m.AthleteBirthDate = nil
				changed = true
			}
		} else if bd, err := time.Parse(birthDateLayout, *r.AthleteBirthDate); err == nil {
			if m.AthleteBirthDate == nil || !m.AthleteBirthDate.Equal(bd) {
				m.AthleteBirthDate = &bd
				changed = true
			}
		}
	}
	if r.AthleteLevel != nil {
		m.AthleteLevel = optStr(*r.AthleteLevel)
		changed = true
	}
	if r.AthleteGuardianName != nil {
		m.AthleteGuardianName = optStr(*r.AthleteGuardianName)
		changed = true
	}
	if r.AthleteGuardianPhone != nil {
		m.AthleteGuardianPhone = optStr(*r.AthleteGuardianPhone)
		changed = true
	}
	if r.AthleteGuardianEmail != nil {
		m.AthleteGuardianEmail = optStr(strings.ToLower(*r.AthleteGuardianEmail))
		changed = true
	}
	if r.AthleteMedicalNotes != nil {
		m.AthleteMedicalNotes = optStr(*r.AthleteMedicalNotes)
		changed = true
	}
	if r.AthleteIsActive != nil && m.AthleteIsActive != *r.AthleteIsActive {
		m.AthleteIsActive = *r.AthleteIsActive
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

func uuidEq(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func nilIfZeroUUID(p *uuid.UUID) *uuid.UUID {
	if p == nil || *p == uuid.Nil {
		return nil
	}
	return p
}
