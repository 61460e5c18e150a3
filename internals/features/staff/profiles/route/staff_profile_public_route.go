// file: internals/features/staff/profiles/route/staff_profile_public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	staffProfileController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/controller"
)

// StaffProfilePublicRoutes serves the coach wall on the public hub page.
// Base group: /api/public
func StaffProfilePublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := staffProfileController.NewStaffProfileController(db)

	public.Get("/hubs/:slug/staff", ctrl.PublicList)
}
