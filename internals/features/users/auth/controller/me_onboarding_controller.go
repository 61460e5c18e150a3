package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helpersAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type OnboardingStatus struct {
	Role string `json:"role"`

	HasStaffProfile       bool `json:"has_staff_profile"`
	IsStaffProfileVisible bool `json:"is_staff_profile_visible"`

	HasAthletes bool `json:"has_athletes"`

	// for the frontend:
	// - staff roles need a published staff profile
	// - parents need at least one athlete linked
	IsFullyOnboarded bool `json:"is_fully_onboarded"`
}

// GET /api/auth/me/onboarding
func (ctl *AuthController) GetMyOnboarding(c *fiber.Ctx) error {
	// 1) user_id from the token via helperAuth
	userID, err := helpersAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "Unauthorized")
	}

	// 2) active hub from the token claims
	hubID, err := helpersAuth.GetActiveHubID(c)
	if err != nil {
		return err
	}

	role := helpersAuth.RoleInHub(c, hubID)

	// ==== staff_profiles ====
	hasStaffProfile := false
	staffVisible := false
	{
		var row struct {
			Visible bool `gorm:"column:visible"`
		}
		errStaff := ctl.DB.WithContext(c.Context()).
			Table("staff_profiles").
			Select("(staff_profile_bio <> '' AND staff_profile_is_active) AS visible").
			Where("staff_profile_user_id = ?", userID).
			Where("staff_profile_hub_id = ?", hubID).
			Where("staff_profile_deleted_at IS NULL").
			Take(&row).Error
		if errStaff != nil {
			if !errors.Is(errStaff, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusInternalServerError, errStaff.Error())
			}
		} else {
			hasStaffProfile = true
			staffVisible = row.Visible
		}
	}

	// ==== athletes linked to this user (as guardian or as the athlete) ====
	hasAthletes := false
	{
		var n int64
		if err := ctl.DB.WithContext(c.Context()).
			Table("athletes").
			Where("athlete_hub_id = ?", hubID).
			Where("athlete_deleted_at IS NULL").
			Where("athlete_guardian_user_id = ? OR athlete_user_id = ?", userID, userID).
			Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		hasAthletes = n > 0
	}

	// ==== final flag ====
	var fully bool
	switch role {
	case "owner", "director", "admin", "coach":
		fully = hasStaffProfile && staffVisible
	case "parent":
		fully = hasAthletes
	default:
		// gymnasts and plain members have nothing mandatory to fill in
		fully = true
	}

	resp := OnboardingStatus{
		Role:                  role,
		HasStaffProfile:       hasStaffProfile,
		IsStaffProfileVisible: staffVisible,
		HasAthletes:           hasAthletes,
		IsFullyOnboarded:      fully,
	}

	return helper.JsonOK(c, "onboarding status", resp)
}
