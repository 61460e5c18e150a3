// file: internals/features/messaging/channels/route/channel_admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	channelController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/controller"
)

// ChannelAdminRoutes wires channel management for hub admins.
// Base group: /api/a
func ChannelAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := channelController.NewChannelController(db)

	channels := admin.Group("/channels")
	channels.Post("/", ctrl.CreateChannel)
	channels.Patch("/:id", ctrl.UpdateChannel)
	channels.Delete("/:id", ctrl.DeleteChannel)
}
