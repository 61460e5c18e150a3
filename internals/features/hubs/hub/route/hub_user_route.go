// file: internals/features/hubs/hub/route/hub_user_route.go
package route

import (
	hubctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Authenticated-user routes: any logged-in user may found a hub
// and becomes its owner.
func HubUserRoutes(user fiber.Router, db *gorm.DB) {
	hubCtrl := hubctl.NewHubController(db)

	hubs := user.Group("/hubs")
	hubs.Post("/", hubCtrl.Create)
}
