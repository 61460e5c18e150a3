package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DBMiddleware puts the shared gorm handle on the request context so
// helpers that only see *fiber.Ctx can reach the database.
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("DB", db)
		return c.Next()
	}
}
