// file: internals/features/hubs/permissions/service/permission_service.go
//
// Resolves the access scope a hub role has on a named feature.
//
// Hubs may carry a permission matrix (feature -> role -> scope) in their
// configuration. The matrix is optional and may be partial: resolution
// falls back from the explicit entry to a role-class default, and finally
// to deny. Owners and directors are never restricted by the matrix.
package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
)

// Scope is the visibility granted to a role on a feature.
type Scope string

const (
	// ScopeAll grants access to every record of the feature.
	ScopeAll Scope = "all"
	// ScopeOwn grants access only to records tied to the actor
	// (their own athletes, their own submissions).
	ScopeOwn Scope = "own"
	// ScopeNone hides the feature entirely.
	ScopeNone Scope = "none"
)

// Valid reports whether s is one of the three known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAll, ScopeOwn, ScopeNone:
		return true
	}
	return false
}

// Grants reports whether the scope allows seeing the feature at all.
// Only ScopeNone means no access; ScopeOwn is enough to render the
// feature, the caller then narrows the data set to the actor's records.
func (s Scope) Grants() bool {
	return s == ScopeAll || s == ScopeOwn
}

// Matrix is a hub's configured permission table: feature -> role -> scope.
// A nil Matrix means the hub has never been configured and every lookup
// resolves to the role-class default.
type Matrix map[string]map[string]Scope

// Feature keys the hub settings UI can configure.
const (
	FeatureRoster      = "roster"
	FeatureEvents      = "events"
	FeatureMessages    = "messages"
	FeatureAssignments = "assignments"
	FeatureAttendance  = "attendance"
	FeatureStaff       = "staff"
)

// KnownFeatures lists every feature key a matrix may configure.
var KnownFeatures = []string{
	FeatureRoster,
	FeatureEvents,
	FeatureMessages,
	FeatureAssignments,
	FeatureAttendance,
	FeatureStaff,
}

// KnownFeature reports whether f is a configurable feature key.
func KnownFeature(f string) bool {
	for _, k := range KnownFeatures {
		if k == f {
			return true
		}
	}
	return false
}

// DefaultScope is the role-class fallback used whenever the matrix has
// no usable entry for (feature, role): admins and coaches see everything,
// parents see their own records, everyone else sees nothing.
func DefaultScope(role string) Scope {
	switch role {
	case constants.RoleAdmin, constants.RoleCoach:
		return ScopeAll
	case constants.RoleParent:
		return ScopeOwn
	default:
		return ScopeNone
	}
}

// GetScope resolves the scope for role on feature under matrix m.
//
// Resolution order:
//  1. no role (unauthenticated / not a member) -> none
//  2. owner or director -> all, configuration is never consulted
//  3. nil matrix -> role-class default
//  4. feature not configured -> role-class default
//  5. role not configured for the feature -> role-class default
//  6. configured entry, returned verbatim
//
// A configured value outside {all, own, none} counts as not configured
// and falls back to the role-class default, so a corrupted matrix can
// never widen access beyond what the defaults grant.
//
// GetScope is total: it returns exactly one scope for every input and
// never fails.
func GetScope(m Matrix, role, feature string) Scope {
	if role == "" {
		return ScopeNone
	}
	if role == constants.RoleOwner || role == constants.RoleDirector {
		return ScopeAll
	}
	if m == nil {
		return DefaultScope(role)
	}
	perRole, ok := m[feature]
	if !ok {
		return DefaultScope(role)
	}
	scope, ok := perRole[role]
	if !ok || !scope.Valid() {
		return DefaultScope(role)
	}
	return scope
}

// HasAccess reports whether role can see feature at all under matrix m.
func HasAccess(m Matrix, role, feature string) bool {
	return GetScope(m, role, feature).Grants()
}

// ParseMatrix decodes a stored permission matrix. Empty or null input
// yields a nil matrix (the unconfigured state), never an error.
func ParseMatrix(raw []byte) (Matrix, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m Matrix
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("invalid permission matrix: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// MarshalMatrix encodes m for storage. A nil matrix encodes as null so
// the unconfigured state round-trips.
func MarshalMatrix(m Matrix) ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return sonic.Marshal(m)
}

// ValidateMatrix checks a matrix before it is written to hub settings.
// It returns one message per offending entry keyed "feature.role" (or
// just the feature key), empty when the matrix is acceptable. Owners and
// directors may not appear in the matrix since their access is fixed.
func ValidateMatrix(m Matrix) map[string]string {
	errs := make(map[string]string)
	for feature, perRole := range m {
		key := strings.TrimSpace(feature)
		if key == "" {
			errs["feature"] = "feature name must not be empty"
			continue
		}
		if !KnownFeature(feature) {
			errs[feature] = fmt.Sprintf("unknown feature %q", feature)
			continue
		}
		for role, scope := range perRole {
			entry := feature + "." + role
			switch {
			case !constants.ValidRole(role):
				errs[entry] = fmt.Sprintf("unknown role %q", role)
			case role == constants.RoleOwner || role == constants.RoleDirector:
				errs[entry] = fmt.Sprintf("role %q cannot be restricted", role)
			case !scope.Valid():
				errs[entry] = fmt.Sprintf("invalid scope %q (want all, own or none)", scope)
			}
		}
	}
	return errs
}

// EffectiveScopes expands the matrix into the full feature -> role -> scope
// table with every fallback applied, for the hub settings screen.
func EffectiveScopes(m Matrix) map[string]map[string]Scope {
	out := make(map[string]map[string]Scope, len(KnownFeatures))
	for _, feature := range KnownFeatures {
		perRole := make(map[string]Scope, len(constants.AllRoles))
		for _, role := range constants.AllRoles {
			perRole[role] = GetScope(m, role, feature)
		}
		out[feature] = perRole
	}
	return out
}

// ConfigurableRoles lists the roles a matrix may mention, sorted for
// stable rendering.
func ConfigurableRoles() []string {
	out := make([]string, 0, len(constants.AllRoles))
	for _, role := range constants.AllRoles {
		if role == constants.RoleOwner || role == constants.RoleDirector {
			continue
		}
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
