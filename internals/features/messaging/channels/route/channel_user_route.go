// file: internals/features/messaging/channels/route/channel_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	channelController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/controller"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// ChannelUserRoutes wires the member-facing channel list.
// Base group: /api/u
func ChannelUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := channelController.NewChannelController(db)

	user.Get("/channels",
		featuresMw.RequireFeature(permissionService.FeatureMessages),
		ctrl.ListChannels)
}
