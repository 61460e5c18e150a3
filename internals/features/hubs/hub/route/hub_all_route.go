// file: internals/features/hubs/hub/route/hub_all_route.go
package route

import (
	hubctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AllHubRoutes(public fiber.Router, db *gorm.DB) {
	hubCtrl := hubctl.NewHubController(db)

	// 🏠 Group: /hubs
	hubs := public.Group("/hubs")

	hubs.Get("/", hubCtrl.List)           // 📄 directory, searchable
	hubs.Get("/:slug", hubCtrl.GetBySlug) // 🔍 detail by slug
}
