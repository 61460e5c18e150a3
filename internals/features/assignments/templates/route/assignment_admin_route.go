// file: internals/features/assignments/templates/route/assignment_admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/controller"
)

// AssignmentAdminRoutes wires template management for hub admins.
// Base group: /api/a
func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := assignmentController.NewAssignmentController(db)

	assignments := admin.Group("/assignments")
	assignments.Post("/", ctrl.CreateAssignment)
	assignments.Patch("/:id", ctrl.UpdateAssignment)
	assignments.Put("/:id/items", ctrl.ReplaceItems)
	assignments.Delete("/:id", ctrl.DeleteAssignment)
}
