// file: internals/helpers/pagination_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/u/athletes", nil)
	p := Parse(r, "created_at", "desc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.False(t, p.All)
	assert.Equal(t, 0, p.Offset())
}

func TestParseClampsAndNormalizes(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=0&per_page=9999&order=UPWARDS", nil)
	p := Parse(r, "name", "asc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultOpts.MaxPerPage, p.PerPage)
	assert.Equal(t, "asc", p.SortOrder)

	r = httptest.NewRequest("GET", "/x?page=3&limit=10&sort=desc", nil)
	p = Parse(r, "name", "asc")
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, "desc", p.SortOrder)
}

func TestParseWithAllPreset(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?per_page=all&page=7", nil)
	p := ParseWith(r, "name", "asc", ExportOpts)

	assert.True(t, p.All)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, ExportOpts.AllHardCap, p.PerPage)

	// presets without AllowAll treat "all" as garbage
	p = ParseWith(r, "name", "asc", DefaultOpts)
	assert.False(t, p.All)
	assert.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
}

func TestSafeOrderClauseUsesWhitelist(t *testing.T) {
	allowed := map[string]string{
		"name":       "athlete_last_name",
		"created_at": "athlete_created_at",
	}

	p := Params{SortBy: "name", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY athlete_last_name ASC", clause)

	// unknown keys fall back to the default column, never raw input
	p = Params{SortBy: "athlete_last_name; DROP TABLE athletes", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY athlete_created_at DESC", clause)

	_, err = p.SafeOrderClause(map[string]string{}, "created_at")
	assert.Error(t, err)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(101, Params{Page: 2, PerPage: 25})

	assert.Equal(t, int64(101), meta.Total)
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasPrev)
	assert.True(t, meta.HasNext)
	require.NotNil(t, meta.PrevPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 1, *meta.PrevPage)
	assert.Equal(t, 3, *meta.NextPage)

	meta = BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}
