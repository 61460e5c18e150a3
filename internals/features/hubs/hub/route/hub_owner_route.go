// file: internals/features/hubs/hub/route/hub_owner_route.go
package route

import (
	hubctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Platform-owner routes; the /api/o group already guards the role.
func HubOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	hubCtrl := hubctl.NewHubController(db)

	hubs := owner.Group("/hubs")
	hubs.Post("/:id/verify", hubCtrl.SetVerified(true))
	hubs.Delete("/:id/verify", hubCtrl.SetVerified(false))
}
