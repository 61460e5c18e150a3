// file: internals/features/staff/profiles/route/staff_profile_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	staffProfileController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/controller"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// StaffProfileUserRoutes wires staff card management. Ownership and
// admin checks live in the controller.
// Base group: /api/u
func StaffProfileUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := staffProfileController.NewStaffProfileController(db)

	profiles := user.Group("/staff-profiles",
		featuresMw.RequireFeature(permissionService.FeatureStaff))

	// "/me" before "/:id"
	profiles.Get("/me", ctrl.GetMyProfile)
	profiles.Post("/", ctrl.CreateProfile)
	profiles.Get("/", ctrl.ListProfiles)
	profiles.Patch("/:id", ctrl.UpdateProfile)
	profiles.Put("/:id/photo", ctrl.UploadPhoto)
	profiles.Delete("/:id", ctrl.DeleteProfile)
}
