package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ✅ Resolver per path
var HubIDResolvers = map[string]func(*fiber.Ctx, *gorm.DB) string{
	"/api/a/events":             resolveHubIDFromBody("event_hub_id"),
	"/api/a/channels":           resolveHubIDFromBody("channel_hub_id"),
	"/api/a/athletes":           resolveHubIDFromBody("athlete_hub_id"),
	"/api/a/events/by-hub":      resolveHubIDFromLocals("hub_admin_ids"),
	"/api/a/attendance/by-event": resolveHubIDFromEventParam("event_id"),
	"/api/a/staff-profiles": resolveHubIDWithFallback(
		resolveHubIDFromBody("staff_profile_hub_id"),
		resolveHubIDFromLocals("hub_admin_ids")),
}

// ✅ Resolver generators

func resolveHubIDFromBody(field string) func(*fiber.Ctx, *gorm.DB) string {
	return func(c *fiber.Ctx, db *gorm.DB) string {
		var body map[string]interface{}
		if err := c.BodyParser(&body); err == nil {
			if id, ok := body[field].(string); ok && isValidUUID(id) {
				log.Println("[DEBUG] hub_id from body:", field)
				return id
			}
		}
		if id := c.Query("hub_id"); isValidUUID(id) {
			log.Println("[DEBUG] hub_id from query param")
			return id
		}
		return ""
	}
}

func resolveHubIDFromLocals(field string) func(*fiber.Ctx, *gorm.DB) string {
	return func(c *fiber.Ctx, db *gorm.DB) string {
		if ids, ok := c.Locals(field).([]string); ok && len(ids) > 0 && isValidUUID(ids[0]) {
			log.Println("[DEBUG] hub_id from locals:", field)
			return ids[0]
		}
		return ""
	}
}

func resolveHubIDFromEventParam(paramName string) func(*fiber.Ctx, *gorm.DB) string {
	return func(c *fiber.Ctx, db *gorm.DB) string {
		eventID := c.Params(paramName)
		if isValidUUID(eventID) {
			var hubID string
			err := db.Raw(`SELECT event_hub_id FROM events WHERE event_id = ?`, eventID).Scan(&hubID).Error
			if err == nil && isValidUUID(hubID) {
				log.Println("[DEBUG] hub_id from DB: events.event_hub_id (by event_id)")
				return hubID
			}
		}
		log.Println("[WARN] Could not resolve hub_id from event_id (resolver)")
		return ""
	}
}

func resolveHubIDWithFallback(primary, fallback func(*fiber.Ctx, *gorm.DB) string) func(*fiber.Ctx, *gorm.DB) string {
	return func(c *fiber.Ctx, db *gorm.DB) string {
		if id := primary(c, db); id != "" {
			return id
		}
		return fallback(c, db)
	}
}

func isValidUUID(val string) bool {
	_, err := uuid.Parse(val)
	return err == nil
}
