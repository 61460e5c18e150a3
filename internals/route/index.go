// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	authMiddleware "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/auth"
	featuresMiddleware "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"

	routeDetails "github.com/rpasek2/V2-Teamhub-sub001/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → no token required
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)

	// ===================== ADMIN (per hub) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + hub admin check)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		featuresMiddleware.IsHubAdmin(),
	)

	// ===================== OWNER (GLOBAL) =====================
	log.Println("[INFO] Setting up OWNER group (Auth + platform owner)...")
	owner := app.Group("/api/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorOwner("platform administration"), constants.OwnerOnly),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Hub routes...")
	routeDetails.HubPublicRoutes(public, db)
	routeDetails.HubUserRoutes(user, db)
	routeDetails.HubAdminRoutes(admin, db)
	routeDetails.HubOwnerRoutes(owner, db)

	log.Println("[INFO] Mounting Team routes...")
	routeDetails.TeamPublicRoutes(public, db)
	routeDetails.TeamUserRoutes(user, db)
	routeDetails.TeamAdminRoutes(admin, db)
}
