// file: internals/features/staff/profiles/dto/staff_profile_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/model"
)

const hireDateLayout = "2006-01-02"

// =============================
// Request DTOs
// =============================

type StaffProfileRequest struct {
	// Defaults to the caller; admins may create cards for other staff.
	StaffProfileUserID *uuid.UUID `json:"staff_profile_user_id"`

	StaffProfileTitle          string   `json:"staff_profile_title" validate:"omitempty,max=100"`
	StaffProfileBio            string   `json:"staff_profile_bio" validate:"omitempty,max=4000"`
	StaffProfileCertifications []string `json:"staff_profile_certifications" validate:"omitempty,max=30,dive,min=1,max=120"`
	StaffProfileHireDate       string   `json:"staff_profile_hire_date" validate:"omitempty,datetime=2006-01-02"`
}

type StaffProfileUpdateRequest struct {
	StaffProfileTitle          *string   `json:"staff_profile_title" validate:"omitempty,max=100"`
	StaffProfileBio            *string   `json:"staff_profile_bio" validate:"omitempty,max=4000"`
	StaffProfileCertifications *[]string `json:"staff_profile_certifications" validate:"omitempty,max=30,dive,min=1,max=120"`
	StaffProfileHireDate       *string   `json:"staff_profile_hire_date" validate:"omitempty,datetime=2006-01-02"`
	StaffProfileIsActive       *bool     `json:"staff_profile_is_active"`
}

// =============================
// Response DTO
// =============================

type StaffProfileResponse struct {
	StaffProfileID     uuid.UUID `json:"staff_profile_id"`
	StaffProfileHubID  uuid.UUID `json:"staff_profile_hub_id"`
	StaffProfileUserID uuid.UUID `json:"staff_profile_user_id"`

	UserName string `json:"user_name,omitempty"`
	FullName string `json:"full_name,omitempty"`

	StaffProfileTitle          string   `json:"staff_profile_title"`
	StaffProfileBio            string   `json:"staff_profile_bio"`
	StaffProfileCertifications []string `json:"staff_profile_certifications"`
	StaffProfilePhotoURL       string   `json:"staff_profile_photo_url,omitempty"`
	StaffProfileHireDate       string   `json:"staff_profile_hire_date,omitempty"`
	StaffProfileIsActive       bool     `json:"staff_profile_is_active"`

	StaffProfileCreatedAt time.Time `json:"staff_profile_created_at"`
	StaffProfileUpdatedAt time.Time `json:"staff_profile_updated_at"`
}

// =============================
// Converters
// =============================

func FromModelStaffProfile(m *model.StaffProfileModel) StaffProfileResponse {
	resp := StaffProfileResponse{
		StaffProfileID:             m.StaffProfileID,
		StaffProfileHubID:          m.StaffProfileHubID,
		StaffProfileUserID:         m.StaffProfileUserID,
		StaffProfileTitle:          m.StaffProfileTitle,
		StaffProfileBio:            m.StaffProfileBio,
		StaffProfileCertifications: []string(m.StaffProfileCertifications),
		StaffProfileIsActive:       m.StaffProfileIsActive,
		StaffProfileCreatedAt:      m.StaffProfileCreatedAt,
		StaffProfileUpdatedAt:      m.StaffProfileUpdatedAt,
	}
	if resp.StaffProfileCertifications == nil {
		resp.StaffProfileCertifications = []string{}
	}
	if m.StaffProfilePhotoURL != nil {
		resp.StaffProfilePhotoURL = *m.StaffProfilePhotoURL
	}
	if m.StaffProfileHireDate != nil {
		resp.StaffProfileHireDate = m.StaffProfileHireDate.Format(hireDateLayout)
	}
	return resp
}

func (r *StaffProfileRequest) ToModelStaffProfile(hubID, userID uuid.UUID) *model.StaffProfileModel {
	m := &model.StaffProfileModel{
		StaffProfileHubID:          hubID,
		StaffProfileUserID:         userID,
		StaffProfileTitle:          strings.TrimSpace(r.StaffProfileTitle),
		StaffProfileBio:            strings.TrimSpace(r.StaffProfileBio),
		StaffProfileCertifications: cleanCertifications(r.StaffProfileCertifications),
		StaffProfileIsActive:       true,
	}
	if hd, err := time.Parse(hireDateLayout, r.StaffProfileHireDate); err == nil && r.StaffProfileHireDate != "" {
		m.StaffProfileHireDate = &hd
	}
	return m
}

// ApplyStaffProfileUpdate copies the set fields onto the model and
// reports whether anything changed.
func ApplyStaffProfileUpdate(m *model.StaffProfileModel, r *StaffProfileUpdateRequest) bool {
	changed := false

	if r.StaffProfileTitle != nil {
		if v := strings.TrimSpace(*r.StaffProfileTitle); v != m.StaffProfileTitle {
			m.StaffProfileTitle = v
			changed = true
		}
	}
	if r.StaffProfileBio != nil {
		if v := strings.TrimSpace(*r.StaffProfileBio); v != m.StaffProfileBio {
			m.StaffProfileBio = v
			changed = true
		}
	}
	if r.StaffProfileCertifications != nil {
		m.StaffProfileCertifications = cleanCertifications(*r.StaffProfileCertifications)
		changed = true
	}
	if r.StaffProfileHireDate != nil {
		if *r.StaffProfileHireDate == "" {
			if m.StaffProfileHireDate != nil {
				m.StaffProfileHireDate = nil
				changed = true
			}
		} else if hd, err := time.Parse(hireDateLayout, *r.StaffProfileHireDate); err == nil {
			if m.StaffProfileHireDate == nil || !m.StaffProfileHireDate.Equal(hd) {
				m.StaffProfileHireDate = &hd
				changed = true
			}
		}
	}
	if r.StaffProfileIsActive != nil && m.StaffProfileIsActive != *r.StaffProfileIsActive {
		m.StaffProfileIsActive = *r.StaffProfileIsActive
		changed = true
	}

	return changed
}

func cleanCertifications(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
