package constants

import "fmt"

// Global role names carried in the user record and JWT claims.
const (
	RoleOwner    = "owner"
	RoleDirector = "director"
	RoleAdmin    = "admin"
	RoleCoach    = "coach"
	RoleParent   = "parent"
	RoleGymnast  = "gymnast"
)

// Role error message templates
const (
	ErrOnlyStaffCanAccess      = "Only coaches, admins, directors, or owners may access %s."
	ErrOnlyAdminsCanAccess     = "Only admins, directors, or owners may access %s."
	ErrOnlyLeadershipCanAccess = "Only directors or owners may access %s."
	ErrOnlyOwnersCanAccess     = "Only owners may access %s."
)

// Helpers for dynamic role error messages
func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorLeadership(feature string) string {
	return fmt.Sprintf(ErrOnlyLeadershipCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleOwner,
		RoleDirector,
		RoleAdmin,
		RoleCoach,
		RoleParent,
		RoleGymnast,
	}

	StaffRoles = []string{
		RoleOwner,
		RoleDirector,
		RoleAdmin,
		RoleCoach,
	}

	AdminAndAbove = []string{
		RoleOwner,
		RoleDirector,
		RoleAdmin,
	}

	LeadershipRoles = []string{
		RoleOwner,
		RoleDirector,
	}

	MemberRoles = []string{
		RoleParent,
		RoleGymnast,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)

// ValidRole reports whether s is one of the known hub roles.
func ValidRole(s string) bool {
	return RoleIn(s, AllRoles)
}

// RoleIn reports whether role is in the given group.
func RoleIn(role string, group []string) bool {
	for _, r := range group {
		if r == role {
			return true
		}
	}
	return false
}
