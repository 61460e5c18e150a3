// file: internals/features/roster/athletes/controller/athlete_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

type AthleteController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAthleteController(db *gorm.DB) *AthleteController {
	return &AthleteController{DB: db, Validate: validator.New()}
}

// =============================
// Admin endpoints (hub from token)
// =============================

// CreateAthlete
// POST /api/a/athletes
func (ctrl *AthleteController) CreateAthlete(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AthleteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModelAthlete(hubID)
	if err := ctrl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add athlete")
	}

	return helper.JsonCreated(c, "Athlete added", fiber.Map{
		"item": dto.FromModelAthlete(m),
	})
}

// UpdateAthlete
// PATCH /api/a/athletes/:id
func (ctrl *AthleteController) UpdateAthlete(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	athleteID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid athlete id")
	}

	var m model.AthleteModel
	if err := ctrl.DB.
		Where("athlete_id = ? AND athlete_hub_id = ?", athleteID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load athlete")
	}

	var req dto.AthleteUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if !dto.ApplyAthleteUpdate(&m, &req) {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelAthlete(&m),
		})
	}

	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update athlete")
	}

	return helper.JsonUpdated(c, "Athlete updated", fiber.Map{
		"item": dto.FromModelAthlete(&m),
	})
}

// DeleteAthlete
// DELETE /api/a/athletes/:id?hard=true
func (ctrl *AthleteController) DeleteAthlete(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	athleteID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid athlete id")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard {
		role := helperAuth.RoleInHub(c, hubID)
		if role != constants.RoleOwner && role != constants.RoleDirector && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
		}
	}

	q := ctrl.DB.Where("athlete_id = ? AND athlete_hub_id = ?", athleteID, hubID)
	if hard {
		q = q.Unscoped()
	}
	res := q.Delete(&model.AthleteModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete athlete")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
	}

	return helper.JsonDeleted(c, "Athlete removed", fiber.Map{
		"athlete_id": athleteID,
		"hard":       hard,
	})
}

// =============================
// Member endpoints (scope-aware reads)
// =============================

// ListAthletes
// GET /api/u/athletes?search=&level=&active=&page=&per_page=
// The roster gate already resolved the caller's scope; "own" narrows
// the list to athletes the caller is linked to.
func (ctrl *AthleteController) ListAthletes(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.Model(&model.AthleteModel{}).
		Where("athlete_hub_id = ?", hubID)

	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "false":
		q = q.Where("athlete_is_active = FALSE")
	case "all":
	default:
		q = q.Where("athlete_is_active = TRUE")
	}

	if level := strings.TrimSpace(c.Query("level")); level != "" {
		q = q.Where("athlete_level ILIKE ?", level)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("athlete_first_name ILIKE ? OR athlete_last_name ILIKE ?", like, like)
	}

	if featuresMw.FeatureScope(c) == permissionService.ScopeOwn {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		q = q.Where("athlete_guardian_user_id = ? OR athlete_user_id = ?", userID, userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count athletes")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var rows []model.AthleteModel
	if err := q.
		Order("athlete_last_name ASC, athlete_first_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list athletes")
	}

	items := make([]dto.AthleteResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelAthlete(&rows[i]))
	}

	return helper.JsonList(c, "Athletes fetched", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetAthlete
// GET /api/u/athletes/:id
func (ctrl *AthleteController) GetAthlete(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	athleteID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid athlete id")
	}

	var m model.AthleteModel
	if err := ctrl.DB.
		Where("athlete_id = ? AND athlete_hub_id = ?", athleteID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load athlete")
	}

	if featuresMw.FeatureScope(c) == permissionService.ScopeOwn {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		linked := (m.AthleteGuardianUserID != nil && *m.AthleteGuardianUserID == userID) ||
			(m.AthleteUserID != nil && *m.AthleteUserID == userID)
		if !linked {
			// Hide rows outside the caller's scope instead of confirming they exist.
			return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
		}
	}

	return helper.JsonOK(c, "Athlete fetched", fiber.Map{
		"item": dto.FromModelAthlete(&m),
	})
}
