package middlewares

import (
	"github.com/gofiber/fiber/v2"

	logger "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/logger"
)

// SetupMiddlewares registers the global middleware chain. Recovery goes
// first so panics anywhere below it become 500s, then CORS, the access
// log and the global rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
