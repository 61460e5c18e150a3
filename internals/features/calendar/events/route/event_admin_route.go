// file: internals/features/calendar/events/route/event_admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/controller"
)

// EventAdminRoutes wires calendar management for hub admins.
// Base group: /api/a
func EventAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := eventController.NewEventController(db)

	events := admin.Group("/events")
	events.Post("/", ctrl.CreateEvent)
	events.Patch("/:id", ctrl.UpdateEvent)
	events.Delete("/:id", ctrl.DeleteEvent)
}
