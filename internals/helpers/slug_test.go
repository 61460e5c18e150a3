// file: internals/helpers/slug_test.go
package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sunrise Gymnastics Club":   "sunrise-gymnastics-club",
		"  Côte d'Azur Élite  ":     "cote-d-azur-elite",
		"Team!!!  #1":               "team-1",
		"---":                       "item",
		"":                          "item",
		"ALL CAPS & Symbols (2024)": "all-caps-symbols-2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 100), "input %q", in)
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	s := Slugify("the quick brown fox jumps over the lazy dog", 15)
	assert.LessOrEqual(t, len(s), 15)
	assert.Equal(t, "the-quick-brown", s)

	// a cut ending on a hyphen gets trimmed
	s = Slugify("ab cd ef", 6)
	assert.Equal(t, "ab-cd", s)
}

func TestTrimForSuffixKeepsTotalLength(t *testing.T) {
	base := "a-very-long-club-name-that-keeps-going"
	out := trimForSuffix(base, "-2", 20)
	assert.LessOrEqual(t, len(out)+2, 20)
	assert.NotEqual(t, "", out)

	// suffix longer than the limit degrades to a stub, never panics
	assert.Equal(t, "x", trimForSuffix(base, "-123456", 5))
}

func TestSuggestSlugFromName(t *testing.T) {
	assert.Equal(t, "flip-city-tumbling", SuggestSlugFromName("Flip City Tumbling"))
}
