// file: internals/features/calendar/events/route/event_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/controller"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// EventUserRoutes wires the member-facing calendar reads.
// Base group: /api/u
func EventUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := eventController.NewEventController(db)

	gate := featuresMw.RequireFeature(permissionService.FeatureEvents)

	user.Get("/calendar", gate, ctrl.GetMonthView)

	events := user.Group("/events", gate)
	events.Get("/", ctrl.ListEvents)
	events.Get("/:id", ctrl.GetEvent)
}
