// file: internals/features/roster/athletes/route/athlete_admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	athleteController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/controller"
)

// AthleteAdminRoutes wires roster management for hub admins.
// Base group: /api/a
func AthleteAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := athleteController.NewAthleteController(db)

	athletes := admin.Group("/athletes")
	athletes.Post("/", ctrl.CreateAthlete)
	athletes.Patch("/:id", ctrl.UpdateAthlete)
	athletes.Delete("/:id", ctrl.DeleteAthlete)
}
