package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func IsHubAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🔍 [MIDDLEWARE] IsHubAdmin active")
		log.Println("    Path  :", c.Path())
		log.Println("    Method:", c.Method())

		// ✅ Platform owner bypass
		if role, ok := c.Locals("userRole").(string); ok && role == "owner" {
			log.Println("[MIDDLEWARE] Bypass: user is owner")
			c.Locals("role", role)
			return c.Next()
		}

		// ✅ Admin hub IDs from the token
		adminHubs, ok := c.Locals("hub_admin_ids").([]string)
		if !ok || len(adminHubs) == 0 {
			log.Println("[MIDDLEWARE] Token has no hub_admin_ids")
			return fiber.NewError(fiber.StatusUnauthorized, "Token is invalid or has no hub access")
		}

		// ✅ Inject the active hub
		hubID := adminHubs[0]
		if active, ok := c.Locals("active_hub_id").(string); ok && active != "" {
			for _, id := range adminHubs {
				if id == active {
					hubID = active
					break
				}
			}
		}
		c.Locals("active_hub_id", hubID)

		if role, ok := c.Locals("userRole").(string); ok {
			c.Locals("role", role)
		}

		log.Println("[MIDDLEWARE] Access GRANTED, hub_id:", hubID)
		return c.Next()
	}
}
