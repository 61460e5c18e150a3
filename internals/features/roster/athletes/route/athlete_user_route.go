// file: internals/features/roster/athletes/route/athlete_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	athleteController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/controller"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// AthleteUserRoutes wires the member-facing roster reads.
// The feature gate resolves the caller's scope (all vs own) before the
// controller runs.
// Base group: /api/u
func AthleteUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := athleteController.NewAthleteController(db)

	athletes := user.Group("/athletes",
		featuresMw.RequireFeature(permissionService.FeatureRoster))
	athletes.Get("/", ctrl.ListAthletes)
	athletes.Get("/:id", ctrl.GetAthlete)
}
