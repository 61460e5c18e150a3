// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals names follow what the auth middleware sets
const (
	LocHubTimezone = "hub_timezone" // string, e.g. "America/Chicago"
	LocHubLoc      = "hub_loc"      // *time.Location
)

// GetHubLocation resolves *time.Location for the active hub:
// 1) c.Locals("hub_loc") filled by middleware
// 2) otherwise "hub_timezone" (string) via LoadLocation
// 3) fallback America/New_York
// 4) last fallback time.UTC
func GetHubLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}

	// 1) middleware already set "hub_loc"
	if v := c.Locals(LocHubLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}

	// 2) only "hub_timezone" (string) present
	if v := c.Locals(LocHubTimezone); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			s = strings.TrimSpace(s)
			if loc, err := time.LoadLocation(s); err == nil {
				// cache into locals so the next call is cheaper
				c.Locals(LocHubLoc, loc)
				return loc
			}
		}
	}

	// 3) fallback
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		c.Locals(LocHubLoc, loc)
		return loc
	}

	// 4) last fallback
	return time.UTC
}

// ToHubTime converts a time (usually UTC from the DB) into the hub timezone.
// Zero times pass through unchanged.
func ToHubTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	loc := GetHubLocation(c)
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// Pointer variant for DTOs using *time.Time
func ToHubTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToHubTime(c, *t)
	return &v
}

// NowInHub: "now" in the hub timezone
func NowInHub(c *fiber.Ctx) time.Time {
	return time.Now().In(GetHubLocation(c))
}

// Controllers call this as:
// now, err := dbtime.GetDBTime(c)
func GetDBTime(c *fiber.Ctx) (time.Time, error) {
	// If this ever reads SELECT NOW() from the DB, only this body changes.
	return NowInHub(c), nil
}
