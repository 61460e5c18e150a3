package helper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// ==========================================
// Default slug length limit
// ==========================================
const DefaultSlugMaxLen = 160

// SlugOptions describes how slug uniqueness is checked in the DB.
type SlugOptions struct {
	// Table name, e.g. "hubs"
	Table string
	// Slug column name, e.g. "hub_slug"
	SlugColumn string

	// Soft-delete column (NULL means alive).
	// E.g. "hub_deleted_at" or "deleted_at".
	// Leave empty when the table has no soft delete.
	SoftDeleteColumn string

	// Extra filters so uniqueness holds inside one tenant/scope.
	// E.g. map[string]any{"channel_hub_id": hubID}
	Filters map[string]any

	// Max slug length (including -2, -3 ... suffixes).
	// 0 means DefaultSlugMaxLen.
	MaxLen int

	// Fallback base when the input normalizes to empty.
	// E.g. "hub", "channel". Should be set so there is a sane fallback.
	DefaultBase string
}

// GenerateSlug normalizes a string into a slug:
// - lower-case
// - spaces & non-alnum become "-"
// - collapse multiple "-" into one
// - trim "-" from both ends
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := b.String()
	out = strings.Trim(out, "-")

	// guard against any remaining "--" runs
	reDash := regexp.MustCompile(`-+`)
	out = reDash.ReplaceAllString(out, "-")
	return out
}

// cutToLen trims s to length <= n, then trims "-"
func cutToLen(s string, n int) string {
	if n <= 0 {
		return s
	}
	if len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

// isTaken checks whether a slug candidate already exists (case-insensitive),
// honoring Filters and SoftDeleteColumn.
func isTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}

	q := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)

	// tenant/scope filters
	for k, v := range opts.Filters {
		q = q.Where(fmt.Sprintf("%s = ?", k), v)
	}

	// soft-delete aware
	if opts.SoftDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", opts.SoftDeleteColumn))
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug builds a slug from "base" (or DefaultBase when empty),
// unique case-insensitively, counting only rows that are not soft-deleted,
// and unique within the Filters scope.
//
// Algorithm:
// 1) Try base as-is.
// 2) On collision, try base-2, base-3, ... until free or the iteration cap.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = strings.TrimSpace(base)
	if base == "" {
		base = opts.DefaultBase
	}
	base = GenerateSlug(base)
	if base == "" {
		if opts.DefaultBase != "" {
			base = GenerateSlug(opts.DefaultBase)
		}
		if base == "" {
			base = "x"
		}
	}

	// keep the initial length in bounds
	if len(base) > maxLen {
		base = cutToLen(base, maxLen)
		if base == "" {
			base = "x"
		}
	}

	// 1) try base first
	taken, err := isTaken(db, opts, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	// 2) on collision append -2, -3, ...
	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := base

		if len(candidate)+len(suf) > maxLen {
			cut := maxLen - len(suf)
			if cut < 1 {
				cut = 1
			}
			candidate = cutToLen(candidate, cut)
			if candidate == "" {
				candidate = "x"
			}
		}
		candidate = candidate + suf

		taken, err = isTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
