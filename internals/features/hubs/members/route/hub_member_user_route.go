// file: internals/features/hubs/members/route/hub_member_user_route.go
package route

import (
	memberctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func HubMemberUserRoutes(user fiber.Router, db *gorm.DB) {
	memberCtrl := memberctl.NewHubMemberController(db)

	members := user.Group("/hub-members")
	members.Post("/leave", memberCtrl.Leave)
}
