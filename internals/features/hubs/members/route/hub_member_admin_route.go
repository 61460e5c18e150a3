// file: internals/features/hubs/members/route/hub_member_admin_route.go
package route

import (
	memberctl "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Member management for the caller's active hub.
func HubMemberAdminRoutes(admin fiber.Router, db *gorm.DB) {
	memberCtrl := memberctl.NewHubMemberController(db)

	// =========================
	// 👥 HUB MEMBERS (Admin)
	// =========================
	members := admin.Group("/hub-members")
	members.Post("/", memberCtrl.AddMember)
	members.Get("/", memberCtrl.ListMembers)
	members.Put("/:id/role", memberCtrl.ChangeRole)
	members.Put("/:id/deactivate", memberCtrl.SetActive(false))
	members.Put("/:id/reactivate", memberCtrl.SetActive(true))
	members.Delete("/:id", memberCtrl.RemoveMember)
}
