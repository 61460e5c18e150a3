// file: internals/features/messaging/messages/route/message_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	messageController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/controller"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// MessageUserRoutes wires posting and reading channel messages. Pinning
// and moderation checks live in the controller because they depend on
// the row, not just the route.
// Base group: /api/u
func MessageUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := messageController.NewMessageController(db)

	gate := featuresMw.RequireFeature(permissionService.FeatureMessages)

	user.Post("/channels/:channel_id/messages", gate, ctrl.PostMessage)
	user.Get("/channels/:channel_id/messages", gate, ctrl.ListMessages)

	messages := user.Group("/messages", gate)
	messages.Patch("/:id", ctrl.EditMessage)
	messages.Put("/:id/pin", ctrl.SetPinned(true))
	messages.Delete("/:id/pin", ctrl.SetPinned(false))
	messages.Delete("/:id", ctrl.DeleteMessage)
}
