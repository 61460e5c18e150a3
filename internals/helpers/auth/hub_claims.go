// file: internals/helpers/auth/hub_claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocUserID   = "user_id"   // string | uuid
	LocUserName = "user_name" // string
	LocUserRole = "userRole"  // global role claim

	// Plain ID lists
	LocHubIDs      = "hub_ids"       // []string | []uuid.UUID, all memberships
	LocHubAdminIDs = "hub_admin_ids" // hubs where role is admin/director/owner
	LocHubStaffIDs = "hub_staff_ids" // hubs where role is coach or above

	// Structured claims
	LocHubRoles    = "hub_roles"     // []HubRolesEntry | []map[string]any
	LocActiveHubID = "active_hub_id" // string UUID
)

/* ============================================
   Types for structured claims
   ============================================ */

type HubRolesEntry struct {
	HubID uuid.UUID `json:"hub_id"`
	Role  string    `json:"role"`
}

/* ============================================
   Locals parsers (robust to various shapes)
   ============================================ */

func normalizeLocalsToStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []uuid.UUID:
		out := make([]string, 0, len(t))
		for _, id := range t {
			out = append(out, id.String())
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return []string{s}
	default:
		return nil
	}
}

func parseUUIDSliceFromLocals(c *fiber.Ctx, key string) ([]uuid.UUID, error) {
	raw := c.Locals(key)
	if raw == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	strs := normalizeLocalsToStrings(raw)
	if len(strs) == 0 {
		return nil, fiber.NewError(fiber.StatusUnauthorized, key+" empty in token")
	}
	out := make([]uuid.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" format in token")
		}
		out = append(out, id)
	}
	return out, nil
}

/* ============================================
   Global role
   ============================================ */

func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

func HasGlobalRole(c *fiber.Ctx, role string) bool {
	return GetRole(c) == strings.ToLower(strings.TrimSpace(role))
}

/* ============================================
   Structured hub_roles claim
   ============================================ */

func parseHubRoles(c *fiber.Ctx) ([]HubRolesEntry, error) {
	v := c.Locals(LocHubRoles)
	if v == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocHubRoles+" not found in token")
	}
	out := make([]HubRolesEntry, 0)
	appendEntry := func(m map[string]any) {
		var e HubRolesEntry
		if s, ok := m["hub_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.HubID = id
			}
		}
		if r, ok := m["role"].(string); ok {
			e.Role = strings.ToLower(strings.TrimSpace(r))
		}
		if e.HubID != uuid.Nil && e.Role != "" {
			out = append(out, e)
		}
	}

	switch arr := v.(type) {
	case []HubRolesEntry:
		return arr, nil
	case []map[string]any:
		for _, m := range arr {
			appendEntry(m)
		}
	case []interface{}:
		for _, it := range arr {
			if m, ok := it.(map[string]any); ok {
				appendEntry(m)
			}
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, LocHubRoles+" format not supported")
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocHubRoles+" empty/invalid")
	}
	return out, nil
}

// RoleInHub returns the member role in one hub, "" when not a member.
func RoleInHub(c *fiber.Ctx, hubID uuid.UUID) string {
	if entries, err := parseHubRoles(c); err == nil {
		for _, e := range entries {
			if e.HubID == hubID {
				return e.Role
			}
		}
	}
	return ""
}

func HasRoleInHub(c *fiber.Ctx, hubID uuid.UUID, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	return role != "" && RoleInHub(c, hubID) == role
}

/* ============================================
   Hub ID lists & active hub
   ============================================ */

func GetHubIDsFromToken(c *fiber.Ctx) ([]uuid.UUID, error) {
	// structured claim wins
	if entries, err := parseHubRoles(c); err == nil && len(entries) > 0 {
		out := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.HubID)
		}
		return out, nil
	}
	return parseUUIDSliceFromLocals(c, LocHubIDs)
}

// GetActiveHubID: explicit active claim → staff list → admin list → union.
func GetActiveHubID(c *fiber.Ctx) (uuid.UUID, error) {
	if s, ok := c.Locals(LocActiveHubID).(string); ok && strings.TrimSpace(s) != "" {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			return id, nil
		}
	}
	if ids, err := parseUUIDSliceFromLocals(c, LocHubStaffIDs); err == nil && len(ids) > 0 {
		return ids[0], nil
	}
	if ids, err := parseUUIDSliceFromLocals(c, LocHubAdminIDs); err == nil && len(ids) > 0 {
		return ids[0], nil
	}
	if ids, err := parseUUIDSliceFromLocals(c, LocHubIDs); err == nil && len(ids) > 0 {
		return ids[0], nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "No hub found in token")
}

/* ============================================
   Role predicates
   ============================================ */

func IsOwner(c *fiber.Ctx) bool {
	return GetRole(c) == "owner"
}

func IsDirector(c *fiber.Ctx) bool {
	return GetRole(c) == "director"
}

// IsHubAdmin: admin/director/owner inside this hub, or a global owner/director.
func IsHubAdmin(c *fiber.Ctx, hubID uuid.UUID) bool {
	switch GetRole(c) {
	case "owner", "director":
		return true
	}
	switch RoleInHub(c, hubID) {
	case "owner", "director", "admin":
		return true
	}
	return false
}

// IsHubStaff: coach or above inside this hub, or a global owner/director.
func IsHubStaff(c *fiber.Ctx, hubID uuid.UUID) bool {
	if IsHubAdmin(c, hubID) {
		return true
	}
	return RoleInHub(c, hubID) == "coach"
}

func EnsureHubAdmin(c *fiber.Ctx, hubID uuid.UUID) error {
	if !IsHubAdmin(c, hubID) {
		return fiber.NewError(fiber.StatusForbidden, "You are not an admin of this hub")
	}
	return nil
}
