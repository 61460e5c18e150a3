// file: internals/features/staff/profiles/model/staff_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StaffProfileModel represents the staff_profiles table (the public
// coach/staff card on the hub page). One profile per user per hub.
type StaffProfileModel struct {
	// PK
	StaffProfileID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"staff_profile_id"`

	// Tenant + subject
	StaffProfileHubID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_staff_profiles_hub_user" json:"staff_profile_hub_id"`
	StaffProfileUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_staff_profiles_hub_user;index" json:"staff_profile_user_id"`

	// Card content
	StaffProfileTitle          string         `gorm:"type:varchar(100);not null;default:''" json:"staff_profile_title"`
	StaffProfileBio            string         `gorm:"type:text;not null;default:''" json:"staff_profile_bio"`
	StaffProfileCertifications pq.StringArray `gorm:"type:text[]" json:"staff_profile_certifications"`

	// Photo with two-phase delete; the old file sits in trash until the
	// retention window passes.
	StaffProfilePhotoURL                *string    `gorm:"type:text" json:"staff_profile_photo_url,omitempty"`
	StaffProfilePhotoTrashURL           *string    `gorm:"type:text" json:"staff_profile_photo_trash_url,omitempty"`
	StaffProfilePhotoDeletePendingUntil *time.Time `json:"staff_profile_photo_delete_pending_until,omitempty"`

	StaffProfileHireDate *time.Time `gorm:"type:date" json:"staff_profile_hire_date,omitempty"`

	// Hidden cards stay off the public hub page.
	StaffProfileIsActive bool `gorm:"not null;default:true" json:"staff_profile_is_active"`

	// Audit
	StaffProfileCreatedAt time.Time      `gorm:"column:staff_profile_created_at;autoCreateTime" json:"staff_profile_created_at"`
	StaffProfileUpdatedAt time.Time      `gorm:"column:staff_profile_updated_at;autoUpdateTime" json:"staff_profile_updated_at"`
	StaffProfileDeletedAt gorm.DeletedAt `gorm:"column:staff_profile_deleted_at;index" json:"staff_profile_deleted_at,omitempty"`
}

func (StaffProfileModel) TableName() string { return "staff_profiles" }
