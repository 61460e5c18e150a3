// file: internals/features/staff/profiles/controller/staff_profile_controller.go
package controller

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	hubModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	memberModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/model"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

type StaffProfileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStaffProfileController(db *gorm.DB) *StaffProfileController {
	return &StaffProfileController{DB: db, Validate: validator.New()}
}

func retentionDuration() time.Duration {
	days := 30
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// canManage: the card's owner or a hub admin.
func canManage(c *fiber.Ctx, hubID uuid.UUID, m *model.StaffProfileModel) bool {
	if userID, err := helperAuth.GetUserIDFromToken(c); err == nil && m.StaffProfileUserID == userID {
		return true
	}
	return helperAuth.IsHubAdmin(c, hubID)
}

// staffMemberRole returns the target's hub role when they hold an
// active staff membership.
func (ctrl *StaffProfileController) staffMemberRole(hubID, userID uuid.UUID) (string, error) {
	var row memberModel.HubMemberModel
	err := ctrl.DB.
		Select("hub_member_role").
		Where("hub_member_hub_id = ? AND hub_member_user_id = ? AND hub_member_is_active = TRUE", hubID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return row.HubMemberRole, err
}

// =============================
// Staff endpoints
// =============================

// CreateProfile
// POST /api/u/staff-profiles
// Staff create their own card; admins may create one for another staff
// member by sending staff_profile_user_id.
func (ctrl *StaffProfileController) CreateProfile(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	callerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.StaffProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	subjectID := callerID
	if req.StaffProfileUserID != nil && *req.StaffProfileUserID != uuid.Nil && *req.StaffProfileUserID != callerID {
		if !helperAuth.IsHubAdmin(c, hubID) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("staff cards for other users"))
		}
		subjectID = *req.StaffProfileUserID
	}

	role, err := ctrl.staffMemberRole(hubID, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify membership")
	}
	if !constants.RoleIn(role, constants.StaffRoles) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("staff cards"))
	}

	m := req.ToModelStaffProfile(hubID, subjectID)

	// The hub+user pair is unique and counts soft-deleted rows, so an
	// earlier removed card is revived instead of re-inserted.
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.StaffProfileModel
		findErr := tx.Unscoped().
			Where("staff_profile_hub_id = ? AND staff_profile_user_id = ?", hubID, subjectID).
			First(&existing).Error

		switch {
		case findErr == nil && !existing.StaffProfileDeletedAt.Valid:
			return fiber.NewError(fiber.StatusConflict, "This user already has a staff card in this hub")
		case findErr == nil:
			m.StaffProfileID = existing.StaffProfileID
			return tx.Unscoped().
				Model(&model.StaffProfileModel{}).
				Where("staff_profile_id = ?", existing.StaffProfileID).
				Updates(map[string]interface{}{
					"staff_profile_deleted_at":     nil,
					"staff_profile_title":          m.StaffProfileTitle,
					"staff_profile_bio":            m.StaffProfileBio,
					"staff_profile_certifications": m.StaffProfileCertifications,
					"staff_profile_hire_date":      m.StaffProfileHireDate,
					"staff_profile_is_active":      true,
				}).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			return tx.Create(m).Error
		default:
			return findErr
		}
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Staff card created", fiber.Map{
		"item": dto.FromModelStaffProfile(m),
	})
}

// GetMyProfile
// GET /api/u/staff-profiles/me
func (ctrl *StaffProfileController) GetMyProfile(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var m model.StaffProfileModel
	if err := ctrl.DB.
		Where("staff_profile_hub_id = ? AND staff_profile_user_id = ?", hubID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "You have no staff card in this hub")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff card")
	}

	return helper.JsonOK(c, "Staff card fetched", fiber.Map{
		"item": dto.FromModelStaffProfile(&m),
	})
}

// ListProfiles
// GET /api/u/staff-profiles?active=
// Scope all sees every card; scope own only the caller's.
func (ctrl *StaffProfileController) ListProfiles(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.
		Table("staff_profiles").
		Select("staff_profiles.*, u.user_name, u.full_name").
		Joins("LEFT JOIN users u ON u.id = staff_profiles.staff_profile_user_id").
		Where("staff_profile_hub_id = ?", hubID).
		Where("staff_profile_deleted_at IS NULL")

	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "false":
		q = q.Where("staff_profile_is_active = FALSE")
	case "all":
	default:
		q = q.Where("staff_profile_is_active = TRUE")
	}

	if featuresMw.FeatureScope(c) == permissionService.ScopeOwn {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		q = q.Where("staff_profile_user_id = ?", userID)
	}

	var rows []profileRow
	if err := q.Order("u.user_name ASC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff cards")
	}

	return helper.JsonOK(c, "Staff cards fetched", fiber.Map{
		"items": profileRowsToResponses(rows),
		"total": len(rows),
	})
}

// UpdateProfile
// PATCH /api/u/staff-profiles/:id
func (ctrl *StaffProfileController) UpdateProfile(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	profileID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff card id")
	}

	var m model.StaffProfileModel
	if err := ctrl.DB.
		Where("staff_profile_id = ? AND staff_profile_hub_id = ?", profileID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff card not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff card")
	}
	if !canManage(c, hubID, &m) {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only edit your own staff card")
	}

	var req dto.StaffProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if !dto.ApplyStaffProfileUpdate(&m, &req) {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelStaffProfile(&m),
		})
	}

	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff card")
	}

	return helper.JsonUpdated(c, "Staff card updated", fiber.Map{
		"item": dto.FromModelStaffProfile(&m),
	})
}

// UploadPhoto
// PUT /api/u/staff-profiles/:id/photo (multipart "photo")
// The previous photo moves to trash and is purged after the retention
// window instead of being deleted outright.
func (ctrl *StaffProfileController) UploadPhoto(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	profileID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff card id")
	}

	var m model.StaffProfileModel
	if err := ctrl.DB.
		Where("staff_profile_id = ? AND staff_profile_hub_id = ?", profileID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff card not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff card")
	}
	if !canManage(c, hubID, &m) {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only edit your own staff card")
	}

	fh, err := c.FormFile("photo")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing photo file")
	}

	url, err := helper.UploadImageToSupabase("staff/"+hubID.String(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to store photo")
	}

	updates := map[string]interface{}{
		"staff_profile_photo_url": url,
	}
	if m.StaffProfilePhotoURL != nil && *m.StaffProfilePhotoURL != "" {
		until := time.Now().Add(retentionDuration())
		updates["staff_profile_photo_trash_url"] = *m.StaffProfilePhotoURL
		updates["staff_profile_photo_delete_pending_until"] = until
	}

	if err := ctrl.DB.Model(&model.StaffProfileModel{}).
		Where("staff_profile_id = ?", profileID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff card")
	}

	return helper.JsonUpdated(c, "Photo updated", fiber.Map{
		"staff_profile_id":        profileID,
		"staff_profile_photo_url": url,
	})
}

// DeleteProfile
// DELETE /api/u/staff-profiles/:id?hard=true
func (ctrl *StaffProfileController) DeleteProfile(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	profileID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff card id")
	}

	var m model.StaffProfileModel
	if err := ctrl.DB.
		Where("staff_profile_id = ? AND staff_profile_hub_id = ?", profileID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff card not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff card")
	}
	if !canManage(c, hubID, &m) {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only remove your own staff card")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard {
		role := helperAuth.RoleInHub(c, hubID)
		if !constants.RoleIn(role, constants.LeadershipRoles) && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
		}
	}

	q := ctrl.DB.Where("staff_profile_id = ?", profileID)
	if hard {
		q = q.Unscoped()
	}
	if err := q.Delete(&model.StaffProfileModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete staff card")
	}

	return helper.JsonDeleted(c, "Staff card removed", fiber.Map{
		"staff_profile_id": profileID,
		"hard":             hard,
	})
}

// =============================
// Public endpoint
// =============================

// PublicList
// GET /api/public/hubs/:slug/staff
// The hub page's coach wall: active, visible cards only.
func (ctrl *StaffProfileController) PublicList(c *fiber.Ctx) error {
	slug := helper.NormalizeSlug(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid hub slug")
	}

	var hub hubModel.HubModel
	if err := ctrl.DB.
		Select("hub_id, hub_name, hub_slug").
		Where("lower(hub_slug) = lower(?) AND hub_is_active = TRUE", slug).
		First(&hub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load hub")
	}

	var rows []profileRow
	if err := ctrl.DB.
		Table("staff_profiles").
		Select("staff_profiles.*, u.user_name, u.full_name").
		Joins("LEFT JOIN users u ON u.id = staff_profiles.staff_profile_user_id").
		Where("staff_profile_hub_id = ?", hub.HubID).
		Where("staff_profile_is_active = TRUE").
		Where("staff_profile_deleted_at IS NULL").
		Order("u.user_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff cards")
	}

	return helper.JsonOK(c, "Staff fetched", fiber.Map{
		"hub": fiber.Map{
			"hub_id":   hub.HubID,
			"hub_name": hub.HubName,
			"hub_slug": hub.HubSlug,
		},
		"items": profileRowsToResponses(rows),
		"total": len(rows),
	})
}

// =============================
// Row helpers
// =============================

type profileRow struct {
	model.StaffProfileModel
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
}

func profileRowsToResponses(rows []profileRow) []dto.StaffProfileResponse {
	items := make([]dto.StaffProfileResponse, 0, len(rows))
	for i := range rows {
		item := dto.FromModelStaffProfile(&rows[i].StaffProfileModel)
		item.UserName = rows[i].UserName
		item.FullName = rows[i].FullName
		items = append(items, item)
	}
	return items
}
