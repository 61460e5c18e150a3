// internals/middlewares/features/require_feature.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

// RequireFeature gates a route group behind the hub's permission matrix.
// It resolves the caller's role in the active hub, looks up the configured
// scope for the feature and rejects with 403 when the scope is none.
// The resolved scope is exposed as Locals("feature_scope") so controllers
// can narrow own-scope queries to the caller's records.
func RequireFeature(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hubID, err := helperAuth.GetActiveHubID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token has no hub membership")
		}
		c.Locals("active_hub_id", hubID.String())

		role := helperAuth.RoleInHub(c, hubID)
		scope := permissionService.GetScope(loadHubMatrix(c, hubID.String()), role, feature)
		if !scope.Grants() {
			log.Printf("[MIDDLEWARE] Access DENIED: role=%s feature=%s", role, feature)
			return fiber.NewError(fiber.StatusForbidden, "You do not have access to this feature")
		}

		c.Locals("feature_scope", string(scope))
		log.Printf("[MIDDLEWARE] Access GRANTED: role=%s feature=%s scope=%s", role, feature, scope)
		return c.Next()
	}
}

// FeatureScope reads the scope stored by RequireFeature. Controllers on
// ungated routes get ScopeNone back.
func FeatureScope(c *fiber.Ctx) permissionService.Scope {
	if s, ok := c.Locals("feature_scope").(string); ok {
		return permissionService.Scope(s)
	}
	return permissionService.ScopeNone
}

// loadHubMatrix fetches the hub's configured permission matrix. Any load
// problem resolves to a nil matrix so the role-class defaults apply.
func loadHubMatrix(c *fiber.Ctx, hubID string) permissionService.Matrix {
	db, ok := c.Locals("DB").(*gorm.DB)
	if !ok || db == nil {
		log.Println("[WARN] RequireFeature: no DB on context, using defaults")
		return nil
	}

	var raw []byte
	err := db.WithContext(c.Context()).
		Raw(`SELECT hub_permissions FROM hubs WHERE hub_id = ? AND hub_deleted_at IS NULL`, hubID).
		Scan(&raw).Error
	if err != nil {
		log.Println("[WARN] RequireFeature: failed to load hub permissions:", err)
		return nil
	}

	matrix, err := permissionService.ParseMatrix(raw)
	if err != nil {
		log.Println("[WARN] RequireFeature: stored permission matrix is invalid:", err)
		return nil
	}
	return matrix
}
