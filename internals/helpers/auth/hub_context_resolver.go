// file: internals/helpers/auth/hub_context_resolver.go
package helper

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HubContext struct {
	ID   uuid.UUID
	Slug string
}

var (
	ErrHubContextMissing   = fiber.NewError(fiber.StatusBadRequest, "Hub context not found. Provide :hub_id in the path or the X-Active-Hub-ID header / ?hub_id query.")
	ErrHubContextAmbiguous = fiber.NewError(fiber.StatusConflict, "Hub context ambiguous for a multi-hub user. Provide an explicit hub identity.")
	ErrHubContextForbidden = fiber.NewError(fiber.StatusForbidden, "You do not have access to this hub or are not an admin.")
)

/* ============================
   Resolver slug → ID (via DB)
============================ */
func GetHubIDBySlug(c *fiber.Ctx, slug string) (uuid.UUID, error) {
	dbAny := c.Locals("DB")
	if dbAny == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "DB context unavailable")
	}
	db, ok := dbAny.(*gorm.DB)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "DB context invalid")
	}

	var id uuid.UUID
	// case-insensitive & only alive
	if err := db.Raw(`
		SELECT hub_id
		FROM hubs
		WHERE LOWER(hub_slug) = LOWER(?) AND hub_deleted_at IS NULL
		LIMIT 1
	`, strings.TrimSpace(slug)).Scan(&id).Error; err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

/* ==========================================
   Resolve context: path → header → cookie → query → host → token
========================================== */
func ResolveHubContext(c *fiber.Ctx) (HubContext, error) {
	// 1) path
	if id := strings.TrimSpace(c.Params("hub_id")); id != "" {
		if uid, err := uuid.Parse(id); err == nil {
			return HubContext{ID: uid}, nil
		}
	}
	if slug := strings.TrimSpace(c.Params("hub_slug")); slug != "" {
		return HubContext{Slug: slug}, nil
	}

	// 2) header
	if h := strings.TrimSpace(c.Get("X-Active-Hub-ID")); h != "" {
		if uid, err := uuid.Parse(h); err == nil {
			return HubContext{ID: uid}, nil
		}
	}
	if h := strings.TrimSpace(c.Get("X-Active-Hub-Slug")); h != "" {
		return HubContext{Slug: h}, nil
	}

	// 3) cookie (handy when testing in Postman)
	if v := strings.TrimSpace(c.Cookies("X-Active-Hub-ID")); v != "" {
		if uid, err := uuid.Parse(v); err == nil {
			return HubContext{ID: uid}, nil
		}
	}
	if v := strings.TrimSpace(c.Cookies("X-Active-Hub-Slug")); v != "" {
		return HubContext{Slug: v}, nil
	}

	// 4) query
	q := c.Context().QueryArgs()
	if b := q.Peek("hub_id"); len(b) > 0 {
		if uid, err := uuid.Parse(string(b)); err == nil {
			return HubContext{ID: uid}, nil
		}
	}
	if b := q.Peek("hub_slug"); len(b) > 0 {
		if s, _ := url.QueryUnescape(string(b)); s != "" {
			return HubContext{Slug: s}, nil
		}
	}

	// 5) host/subdomain
	host := c.Hostname()
	parts := strings.Split(host, ".")
	if len(parts) >= 3 {
		sub := parts[0]
		if sub != "www" && sub != "app" && sub != "" {
			return HubContext{Slug: sub}, nil
		}
	}

	// 6) token fallback (usually single-hub users)
	if id, err := GetActiveHubID(c); err == nil && id != uuid.Nil {
		return HubContext{ID: id}, nil
	}

	return HubContext{}, ErrHubContextMissing
}

// EnsureHubAccessAdmin resolves the context to a hub ID and requires an
// admin-level role there.
func EnsureHubAccessAdmin(c *fiber.Ctx, hc HubContext) (uuid.UUID, error) {
	var hubID uuid.UUID

	// slug → id
	if hc.ID == uuid.Nil && hc.Slug != "" {
		id, er := GetHubIDBySlug(c, hc.Slug)
		if er != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Hub (slug) not found")
		}
		hubID = id
	} else {
		hubID = hc.ID
	}

	// 1) Role check first (admin/director/owner in this hub ⇒ member too)
	if IsHubAdmin(c, hubID) {
		return hubID, nil
	}

	// 2) Not admin: distinguish non-member from under-privileged member
	if !UserHasHub(c, hubID) {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "You are not a member of this hub.")
	}

	// 3) Member but not admin
	return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "You are not an admin of this hub.")
}

func UserHasHub(c *fiber.Ctx, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	// Member when a hub_roles entry exists for this hub
	if entries, err := parseHubRoles(c); err == nil {
		for _, e := range entries {
			if e.HubID == id {
				return true
			}
		}
	}
	// Fallback to the hub_ids list (when present)
	if ids, _ := GetHubIDsFromToken(c); len(ids) > 0 {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
	}
	return false
}
