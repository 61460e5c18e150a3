// internals/route/details/hub_routes.go
package details

import (
	// ====== Hub tenancy features ======
	HubRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/route"
	HubMemberRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== PUBLIC ===================== */
// Hub directory and detail pages, no login required.
func HubPublicRoutes(r fiber.Router, db *gorm.DB) {
	HubRoutes.AllHubRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */
// Any logged-in user: found a hub, leave a hub.
func HubUserRoutes(r fiber.Router, db *gorm.DB) {
	HubRoutes.HubUserRoutes(r, db)
	HubMemberRoutes.HubMemberUserRoutes(r, db)
}

/* ===================== ADMIN (per hub) ===================== */
func HubAdminRoutes(r fiber.Router, db *gorm.DB) {
	HubRoutes.HubAdminRoutes(r, db)
	HubMemberRoutes.HubMemberAdminRoutes(r, db)
}

/* ===================== OWNER (GLOBAL) ===================== */
func HubOwnerRoutes(r fiber.Router, db *gorm.DB) {
	HubRoutes.HubOwnerRoutes(r, db)
}
