// file: internals/features/users/auth/controller/me_simple_context_controller.go
package controller

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	hubModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	userModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/user/model"

	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

/* =============== DTO =============== */

type HubRoleOption struct {
	HubID      uuid.UUID `json:"hub_id"`
	HubName    string    `json:"hub_name"`
	HubSlug    string    `json:"hub_slug"`
	HubLogoURL *string   `json:"hub_logo_url,omitempty"`
	Role       string    `json:"role"`
}

type HubSelection struct {
	HubID *uuid.UUID `json:"hub_id,omitempty"`
	Role  *string    `json:"role,omitempty"`
}

type MyHubsResponse struct {
	UserID      uuid.UUID       `json:"user_id"`
	UserName    string          `json:"user_name"`
	Memberships []HubRoleOption `json:"memberships"`
	Selection   *HubSelection   `json:"selection,omitempty"`
}

/* =============== Local helper: decode JWT claims without verifying =============== */

type jwtHubRole struct {
	HubID string `json:"hub_id"`
	Role  string `json:"role"`
}
type jwtClaimsLite struct {
	HubIDs      []string     `json:"hub_ids"`
	HubRoles    []jwtHubRole `json:"hub_roles"`
	ActiveHubID string       `json:"active_hub_id"`
}

// Token from Authorization: Bearer ... or the access_token cookie
func getAccessTokenFromCtx(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") && len(auth) > 7 {
		return strings.TrimSpace(auth[7:])
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	return ""
}

// Decode the JWT payload (middle segment) without verification, claims only.
// The signature was already checked by the auth middleware.
func parseHubInfoFromJWT(c *fiber.Ctx) (ids []uuid.UUID, roleMap map[uuid.UUID]string) {
	roleMap = map[uuid.UUID]string{}

	token := getAccessTokenFromCtx(c)
	if token == "" {
		return
	}
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return
	}
	payloadB64 := parts[1]

	// JWT uses base64url without padding
	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		if b2, e2 := base64.StdEncoding.DecodeString(payloadB64); e2 == nil {
			payloadBytes = b2
		} else {
			return
		}
	}

	var cl jwtClaimsLite
	if err := json.Unmarshal(payloadBytes, &cl); err != nil {
		return
	}

	seen := map[uuid.UUID]struct{}{}
	for _, s := range cl.HubIDs {
		if id, e := uuid.Parse(strings.TrimSpace(s)); e == nil && id != uuid.Nil {
			if _, ok := seen[id]; !ok {
				ids = append(ids, id)
				seen[id] = struct{}{}
			}
		}
	}
	for _, hr := range cl.HubRoles {
		if id, e := uuid.Parse(strings.TrimSpace(hr.HubID)); e == nil && id != uuid.Nil {
			if _, ok := seen[id]; !ok {
				ids = append(ids, id)
				seen[id] = struct{}{}
			}
			if r := strings.ToLower(strings.TrimSpace(hr.Role)); r != "" {
				roleMap[id] = r
			}
		}
	}
	if cl.ActiveHubID != "" {
		if id, e := uuid.Parse(strings.TrimSpace(cl.ActiveHubID)); e == nil && id != uuid.Nil {
			if _, ok := seen[id]; !ok {
				ids = append(ids, id)
			}
		}
	}

	return
}

/* =============== Controller: GetMyHubs (hub picker) =============== */

func (ac *AuthController) GetMyHubs(c *fiber.Ctx) error {
	// 1) user_id from the middleware-filled context
	userUUID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil || userUUID == uuid.Nil {
		// dev fallback: ?user_id=
		if userIDStr := strings.TrimSpace(c.Query("user_id")); userIDStr != "" {
			if parsed, e := uuid.Parse(userIDStr); e == nil {
				userUUID = parsed
			}
		}
		if userUUID == uuid.Nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "user_id missing from context")
		}
	}

	// 2) Load the user (PK "id")
	var me userModel.UserModel
	if err := ac.DB.WithContext(c.Context()).
		Select("id, user_name").
		Where("id = ?", userUUID).
		First(&me).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user: "+err.Error())
	}

	// 3) Memberships from hub_members (source of truth)
	hubRole := map[uuid.UUID]string{}
	{
		type memberRow struct {
			HubID uuid.UUID `gorm:"column:hub_member_hub_id"`
			Role  string    `gorm:"column:hub_member_role"`
		}
		var rows []memberRow
		if err := ac.DB.WithContext(c.Context()).
			Table("hub_members").
			Select("hub_member_hub_id, hub_member_role").
			Where("hub_member_user_id = ?", userUUID).
			Where("hub_member_is_active = TRUE").
			Where("hub_member_deleted_at IS NULL").
			Scan(&rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load memberships: "+err.Error())
		}
		for _, r := range rows {
			hubRole[r.HubID] = strings.ToLower(strings.TrimSpace(r.Role))
		}
	}

	// 4) Seed additional candidates from the token claims (DB wins on role)
	idsFromJWT, rolesFromJWT := parseHubInfoFromJWT(c)
	candidate := map[uuid.UUID]struct{}{}
	for id := range hubRole {
		candidate[id] = struct{}{}
	}
	for _, id := range idsFromJWT {
		candidate[id] = struct{}{}
		if _, ok := hubRole[id]; !ok {
			if r, ok := rolesFromJWT[id]; ok {
				hubRole[id] = r
			}
		}
	}

	resp := MyHubsResponse{
		UserID:      me.ID,
		UserName:    me.UserName,
		Memberships: []HubRoleOption{},
	}

	if len(candidate) == 0 {
		return helper.JsonOK(c, "Context fetched", resp)
	}

	// 5) Hub summaries for all candidates
	hubIDs := make([]uuid.UUID, 0, len(candidate))
	for id := range candidate {
		hubIDs = append(hubIDs, id)
	}

	var hubs []hubModel.HubModel
	if err := ac.DB.WithContext(c.Context()).
		Select("hub_id, hub_name, hub_slug, hub_logo_url").
		Where("hub_id IN ?", hubIDs).
		Where("hub_deleted_at IS NULL").
		Where("hub_is_active = ?", true).
		Order("hub_name ASC").
		Find(&hubs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load hubs: "+err.Error())
	}

	for _, h := range hubs {
		role := hubRole[h.HubID]
		if role == "" {
			continue
		}
		resp.Memberships = append(resp.Memberships, HubRoleOption{
			HubID:      h.HubID,
			HubName:    h.HubName,
			HubSlug:    h.HubSlug,
			HubLogoURL: h.HubLogoURL,
			Role:       role,
		})
	}

	// 6) Optional selection via query, remembered in a cookie
	if selHubStr := strings.TrimSpace(c.Query("select_hub_id")); selHubStr != "" {
		selHubID, e := uuid.Parse(selHubStr)
		if e != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "select_hub_id is not a valid UUID")
		}
		var selRole string
		for _, m := range resp.Memberships {
			if m.HubID == selHubID {
				selRole = m.Role
				break
			}
		}
		if selRole == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "You are not a member of that hub")
		}
		c.Cookie(&fiber.Cookie{
			Name:     "active_hub_id",
			Value:    selHubID.String(),
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Lax",
			Expires:  time.Now().Add(12 * time.Hour),
		})
		resp.Selection = &HubSelection{
			HubID: &selHubID,
			Role:  &selRole,
		}
	}

	return helper.JsonOK(c, "Context fetched", resp)
}
