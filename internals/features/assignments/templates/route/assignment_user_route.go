// file: internals/features/assignments/templates/route/assignment_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/controller"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// AssignmentUserRoutes wires the member-facing assignment reads.
// Base group: /api/u
func AssignmentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := assignmentController.NewAssignmentController(db)

	assignments := user.Group("/assignments",
		featuresMw.RequireFeature(permissionService.FeatureAssignments))
	assignments.Get("/", ctrl.ListAssignments)
	assignments.Get("/:id", ctrl.GetAssignment)
}
