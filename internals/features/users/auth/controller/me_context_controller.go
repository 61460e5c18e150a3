// file: internals/features/users/auth/controller/me_context_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	hubModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	userModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/user/model"

	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
)

/* =============== Lightweight link model =============== */

// hub_members: user ↔ hub with a per-hub role
type hubMemberRow struct {
	HubID uuid.UUID `gorm:"column:hub_member_hub_id"`
	Role  string    `gorm:"column:hub_member_role"`
}

/* =============== DTO Response =============== */

type HubWithAccess struct {
	Hub    hubModel.HubModel                  `json:"hub"`
	Role   string                             `json:"role"`
	Scopes map[string]permissionService.Scope `json:"scopes"`
}

type MyContextResponse struct {
	User userModel.UserModel `json:"user"`
	Hubs []HubWithAccess     `json:"hubs"`
}

/* =============== Controller: GetMyContext =============== */

// GetMyContext returns the caller plus every hub they belong to, their
// role there and the per-feature scope that role resolves to.
func (ac *AuthController) GetMyContext(c *fiber.Ctx) error {
	// 1) user_id from the token (middleware fills Locals)
	userUUID, err := helper.GetUserIDFromToken(c)
	if err != nil || userUUID == uuid.Nil {
		// dev fallback: ?user_id=
		if userIDStr := strings.TrimSpace(c.Query("user_id")); userIDStr != "" {
			if parsed, e := uuid.Parse(userIDStr); e == nil {
				userUUID = parsed
			}
		}
		if userUUID == uuid.Nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id not available on context")
		}
	}

	// 2) the user itself
	var me userModel.UserModel
	if err := ac.DB.WithContext(c.Context()).
		Where("id = ?", userUUID).
		First(&me).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user: "+err.Error())
	}
	me.Password = ""
	me.SecurityAnswer = ""

	// 3) memberships
	var rows []hubMemberRow
	if err := ac.DB.WithContext(c.Context()).
		Table("hub_members").
		Select("hub_member_hub_id", "hub_member_role").
		Where("hub_member_user_id = ? AND hub_member_is_active = TRUE AND hub_member_deleted_at IS NULL", userUUID).
		Scan(&rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load hub memberships: "+err.Error())
	}

	roleByHub := make(map[uuid.UUID]string, len(rows))
	hubIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := roleByHub[r.HubID]; !ok {
			hubIDs = append(hubIDs, r.HubID)
		}
		roleByHub[r.HubID] = strings.ToLower(r.Role)
	}

	// 4) hubs + resolved scopes per feature
	out := MyContextResponse{User: me, Hubs: make([]HubWithAccess, 0, len(hubIDs))}
	if len(hubIDs) > 0 {
		var hubs []hubModel.HubModel
		if err := ac.DB.WithContext(c.Context()).
			Where("hub_id IN ? AND hub_deleted_at IS NULL", hubIDs).
			Order("hub_name ASC").
			Find(&hubs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load hubs: "+err.Error())
		}

		for _, h := range hubs {
			role := roleByHub[h.HubID]
			matrix, perr := permissionService.ParseMatrix([]byte(h.HubPermissions))
			if perr != nil {
				matrix = nil
			}

			scopes := make(map[string]permissionService.Scope, len(permissionService.KnownFeatures))
			for _, feature := range permissionService.KnownFeatures {
				scopes[feature] = permissionService.GetScope(matrix, role, feature)
			}

			out.Hubs = append(out.Hubs, HubWithAccess{Hub: h, Role: role, Scopes: scopes})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": out,
	})
}
