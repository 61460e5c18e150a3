// file: internals/features/hubs/hub/controller/hub_permissions_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	model "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

/* =========================================================
   Per-hub feature scopes.
   NULL config means every role falls back to its class default,
   owner/director are always full-access and not configurable.
========================================================= */

// permissionsHubID: path param when present, active hub from the
// token claims otherwise (the /hubs/permissions alias).
func permissionsHubID(c *fiber.Ctx) (uuid.UUID, error) {
	if strings.TrimSpace(c.Params("id")) != "" {
		return parseHubID(c)
	}
	return helperAuth.GetActiveHubID(c)
}

// GET /api/a/hubs/:id/permissions (also /api/a/hubs/permissions)
func (hc *HubController) GetPermissions(c *fiber.Ctx) error {
	id, err := permissionsHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !helperAuth.IsHubAdmin(c, id) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("hub permissions"))
	}

	var m model.HubModel
	if err := hc.DB.WithContext(c.Context()).
		Select("hub_id, hub_permissions").
		First(&m, "hub_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hub")
	}

	matrix, perr := permissionService.ParseMatrix([]byte(m.HubPermissions))
	if perr != nil {
		// stored config is unreadable, treat as unset
		matrix = nil
	}

	return helper.JsonOK(c, "Hub permissions fetched", fiber.Map{
		"hub_id":             id.String(),
		"permissions":        matrix,
		"effective":          permissionService.EffectiveScopes(matrix),
		"features":           permissionService.KnownFeatures,
		"configurable_roles": permissionService.ConfigurableRoles(),
	})
}

// PUT /api/a/hubs/:id/permissions (also /api/a/hubs/permissions)
// Body is the matrix itself: {"roster":{"parent":"none"}, ...}.
// An empty object or null clears the config back to defaults.
func (hc *HubController) PutPermissions(c *fiber.Ctx) error {
	id, err := permissionsHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !helperAuth.IsHubAdmin(c, id) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("hub permissions"))
	}

	matrix, perr := permissionService.ParseMatrix(c.Body())
	if perr != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission matrix JSON")
	}

	if matrix != nil {
		if errs := permissionService.ValidateMatrix(matrix); len(errs) > 0 {
			fieldErrors := make(map[string][]string, len(errs))
			for k, v := range errs {
				fieldErrors[k] = []string{v}
			}
			return helper.JsonValidationError(c, fieldErrors)
		}
	}

	updates := map[string]any{"hub_permissions": nil}
	if matrix != nil {
		raw, merr := permissionService.MarshalMatrix(matrix)
		if merr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to encode permission matrix")
		}
		updates["hub_permissions"] = datatypes.JSON(raw)
	}

	res := hc.DB.WithContext(c.Context()).
		Model(&model.HubModel{}).
		Where("hub_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save permissions")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
	}

	return helper.JsonUpdated(c, "Hub permissions updated", fiber.Map{
		"hub_id":      id.String(),
		"permissions": matrix,
		"effective":   permissionService.EffectiveScopes(matrix),
	})
}

// DELETE /api/a/hubs/:id/permissions (also /api/a/hubs/permissions)
// Clears the config so role-class defaults apply again.
func (hc *HubController) DeletePermissions(c *fiber.Ctx) error {
	id, err := permissionsHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !helperAuth.IsHubAdmin(c, id) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("hub permissions"))
	}

	res := hc.DB.WithContext(c.Context()).
		Model(&model.HubModel{}).
		Where("hub_id = ?", id).
		Update("hub_permissions", nil)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reset permissions")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
	}

	return helper.JsonDeleted(c, "Hub permissions reset to defaults", fiber.Map{
		"hub_id":    id.String(),
		"effective": permissionService.EffectiveScopes(nil),
	})
}
