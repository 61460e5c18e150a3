// file: internals/features/hubs/hub/route/hub_admin_route.go
package route

import (
	hubctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Admin routes for the hub feature. The group already carries auth;
// per-hub admin checks happen inside the controller.
func HubAdminRoutes(admin fiber.Router, db *gorm.DB) {
	hubCtrl := hubctl.NewHubController(db)

	// =========================
	// 🏠 HUBS (Admin)
	// =========================
	hubs := admin.Group("/hubs")

	// more specific first so "/permissions" does not collide with "/:id"
	hubs.Get("/permissions", hubCtrl.GetPermissions)
	hubs.Put("/permissions", hubCtrl.PutPermissions)
	hubs.Delete("/permissions", hubCtrl.DeletePermissions)

	hubs.Get("/:id", hubCtrl.GetByID)
	hubs.Patch("/:id", hubCtrl.Patch)
	hubs.Delete("/:id", hubCtrl.Delete)

	hubs.Get("/:id/permissions", hubCtrl.GetPermissions)
	hubs.Put("/:id/permissions", hubCtrl.PutPermissions)
	hubs.Delete("/:id/permissions", hubCtrl.DeletePermissions)
}
