// file: internals/features/hubs/permissions/service/permission_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
)

func TestOwnerAndDirectorAlwaysAll(t *testing.T) {
	restrictive := Matrix{
		FeatureRoster: {constants.RoleOwner: ScopeNone, constants.RoleDirector: ScopeNone},
	}
	for _, role := range []string{constants.RoleOwner, constants.RoleDirector} {
		for _, m := range []Matrix{nil, {}, restrictive} {
			for _, feature := range append(KnownFeatures, "unheard-of") {
				assert.Equal(t, ScopeAll, GetScope(m, role, feature),
					"role=%s feature=%s", role, feature)
			}
		}
	}
}

func TestRoleClassDefaultsWithoutConfig(t *testing.T) {
	cases := map[string]Scope{
		constants.RoleAdmin:   ScopeAll,
		constants.RoleCoach:   ScopeAll,
		constants.RoleParent:  ScopeOwn,
		constants.RoleGymnast: ScopeNone,
	}
	for role, want := range cases {
		for _, feature := range KnownFeatures {
			assert.Equal(t, want, GetScope(nil, role, feature),
				"role=%s feature=%s", role, feature)
		}
	}
}

func TestNoRoleMeansNone(t *testing.T) {
	m := Matrix{FeatureRoster: {constants.RoleParent: ScopeAll}}
	assert.Equal(t, ScopeNone, GetScope(m, "", FeatureRoster))
	assert.False(t, HasAccess(m, "", FeatureRoster))
}

func TestExplicitConfigOverridesDefault(t *testing.T) {
	m := Matrix{FeatureRoster: {constants.RoleParent: ScopeNone}}
	assert.Equal(t, ScopeNone, GetScope(m, constants.RoleParent, FeatureRoster))

	// other features keep the parent default
	assert.Equal(t, ScopeOwn, GetScope(m, constants.RoleParent, FeatureEvents))

	m = Matrix{FeatureMessages: {constants.RoleGymnast: ScopeOwn}}
	assert.Equal(t, ScopeOwn, GetScope(m, constants.RoleGymnast, FeatureMessages))
}

func TestMissingFeatureOrRoleFallsBack(t *testing.T) {
	m := Matrix{
		FeatureRoster: {constants.RoleGymnast: ScopeAll},
	}
	// feature not configured
	assert.Equal(t, ScopeAll, GetScope(m, constants.RoleCoach, FeatureAttendance))
	// feature configured, role missing
	assert.Equal(t, ScopeOwn, GetScope(m, constants.RoleParent, FeatureRoster))
	// feature and role configured
	assert.Equal(t, ScopeAll, GetScope(m, constants.RoleGymnast, FeatureRoster))
}

func TestMalformedScopeFallsBackToDefault(t *testing.T) {
	m := Matrix{
		FeatureRoster: {
			constants.RoleParent:  Scope("read-write"),
			constants.RoleGymnast: Scope(""),
		},
	}
	assert.Equal(t, ScopeOwn, GetScope(m, constants.RoleParent, FeatureRoster))
	assert.Equal(t, ScopeNone, GetScope(m, constants.RoleGymnast, FeatureRoster))
}

func TestHasAccessMatchesScope(t *testing.T) {
	assert.True(t, ScopeAll.Grants())
	assert.True(t, ScopeOwn.Grants())
	assert.False(t, ScopeNone.Grants())

	m := Matrix{FeatureStaff: {constants.RoleGymnast: ScopeOwn}}
	assert.True(t, HasAccess(m, constants.RoleGymnast, FeatureStaff))
	assert.True(t, HasAccess(nil, constants.RoleParent, FeatureStaff))
	assert.False(t, HasAccess(nil, constants.RoleGymnast, FeatureStaff))
}

func TestGetScopeIsIdempotent(t *testing.T) {
	m := Matrix{FeatureEvents: {constants.RoleCoach: ScopeOwn}}
	first := GetScope(m, constants.RoleCoach, FeatureEvents)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GetScope(m, constants.RoleCoach, FeatureEvents))
	}
	assert.Equal(t, ScopeOwn, first)
}

func TestParseMatrix(t *testing.T) {
	m, err := ParseMatrix([]byte(`{"roster":{"parent":"none","coach":"all"}}`))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, ScopeNone, m[FeatureRoster][constants.RoleParent])
	assert.Equal(t, ScopeAll, m[FeatureRoster][constants.RoleCoach])

	for _, raw := range [][]byte{nil, []byte(""), []byte("null"), []byte("{}")} {
		m, err := ParseMatrix(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Nil(t, m, "raw=%q", raw)
	}

	_, err = ParseMatrix([]byte(`{"roster":`))
	assert.Error(t, err)
}

func TestMarshalMatrixRoundTrip(t *testing.T) {
	raw, err := MarshalMatrix(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	in := Matrix{FeatureRoster: {constants.RoleParent: ScopeNone}}
	raw, err = MarshalMatrix(in)
	require.NoError(t, err)
	out, err := ParseMatrix(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestValidateMatrix(t *testing.T) {
	ok := Matrix{
		FeatureRoster:   {constants.RoleParent: ScopeNone},
		FeatureMessages: {constants.RoleGymnast: ScopeOwn, constants.RoleCoach: ScopeAll},
	}
	assert.Empty(t, ValidateMatrix(ok))

	bad := Matrix{
		"trophies":    {constants.RoleParent: ScopeAll},
		FeatureRoster: {"janitor": ScopeAll},
		FeatureEvents: {constants.RoleOwner: ScopeNone},
		FeatureStaff:  {constants.RoleCoach: Scope("full")},
	}
	errs := ValidateMatrix(bad)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "trophies")
	assert.Contains(t, errs, "roster.janitor")
	assert.Contains(t, errs, "events.owner")
	assert.Contains(t, errs, "staff.coach")
}

func TestEffectiveScopes(t *testing.T) {
	m := Matrix{FeatureRoster: {constants.RoleParent: ScopeNone}}
	eff := EffectiveScopes(m)

	require.Len(t, eff, len(KnownFeatures))
	for _, feature := range KnownFeatures {
		require.Contains(t, eff, feature)
		require.Len(t, eff[feature], len(constants.AllRoles))
	}

	assert.Equal(t, ScopeNone, eff[FeatureRoster][constants.RoleParent])
	assert.Equal(t, ScopeOwn, eff[FeatureEvents][constants.RoleParent])
	assert.Equal(t, ScopeAll, eff[FeatureRoster][constants.RoleOwner])
	assert.Equal(t, ScopeAll, eff[FeatureAttendance][constants.RoleDirector])
}

func TestConfigurableRolesExcludeLeadership(t *testing.T) {
	roles := ConfigurableRoles()
	assert.NotContains(t, roles, constants.RoleOwner)
	assert.NotContains(t, roles, constants.RoleDirector)
	assert.ElementsMatch(t, []string{
		constants.RoleAdmin, constants.RoleCoach,
		constants.RoleParent, constants.RoleGymnast,
	}, roles)
}
