// file: internals/features/calendar/holidays/service/holiday_service.go
package service

import (
	"fmt"
	"sort"
	"time"
)

// Holiday is the display metadata attached to one calendar date.
// The color fields are presentation tokens passed through to clients as-is.
type Holiday struct {
	Name            string `json:"name"`
	Emoji           string `json:"emoji"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

// Calendar maps "YYYY-MM-DD" date keys to holiday metadata.
type Calendar map[string]Holiday

/* =======================================================================
   Rule table
   =======================================================================
   Every observed holiday is one declarative rule. Rules are evaluated in
   table order (fixed dates, then floating weekday rules, then Easter);
   a later rule landing on an occupied date overwrites the earlier entry.
   The only overlap the current table can produce is Father's Day falling
   on June 19 (2022, 2033, ...), where Father's Day replaces Juneteenth
   for that date. init validates the table's static shape so any other
   overlap introduced by an edit fails fast.
*/

type ruleKind int

const (
	ruleFixed ruleKind = iota
	ruleNthWeekday
	ruleLastWeekday
	ruleEaster
)

type rule struct {
	kind    ruleKind
	month   time.Month
	day     int          // ruleFixed
	weekday time.Weekday // ruleNthWeekday, ruleLastWeekday
	n       int          // ruleNthWeekday
	holiday Holiday
}

var rules = []rule{
	// Fixed dates
	{kind: ruleFixed, month: time.January, day: 1, holiday: Holiday{Name: "New Year's Day", Emoji: "🎉", BackgroundColor: "#FEF3C7", TextColor: "#92400E"}},
	{kind: ruleFixed, month: time.February, day: 14, holiday: Holiday{Name: "Valentine's Day", Emoji: "❤️", BackgroundColor: "#FCE7F3", TextColor: "#9D174D"}},
	{kind: ruleFixed, month: time.March, day: 17, holiday: Holiday{Name: "St. Patrick's Day", Emoji: "🍀", BackgroundColor: "#D1FAE5", TextColor: "#065F46"}},
	{kind: ruleFixed, month: time.June, day: 19, holiday: Holiday{Name: "Juneteenth", Emoji: "✊", BackgroundColor: "#FEE2E2", TextColor: "#991B1B"}},
	{kind: ruleFixed, month: time.July, day: 4, holiday: Holiday{Name: "Independence Day", Emoji: "🎆", BackgroundColor: "#DBEAFE", TextColor: "#1E40AF"}},
	{kind: ruleFixed, month: time.October, day: 31, holiday: Holiday{Name: "Halloween", Emoji: "🎃", BackgroundColor: "#FFEDD5", TextColor: "#9A3412"}},
	{kind: ruleFixed, month: time.November, day: 11, holiday: Holiday{Name: "Veterans Day", Emoji: "🇺🇸", BackgroundColor: "#E0E7FF", TextColor: "#3730A3"}},
	{kind: ruleFixed, month: time.December, day: 24, holiday: Holiday{Name: "Christmas Eve", Emoji: "🎄", BackgroundColor: "#DCFCE7", TextColor: "#166534"}},
	{kind: ruleFixed, month: time.December, day: 25, holiday: Holiday{Name: "Christmas Day", Emoji: "🎅", BackgroundColor: "#FEE2E2", TextColor: "#991B1B"}},
	{kind: ruleFixed, month: time.December, day: 31, holiday: Holiday{Name: "New Year's Eve", Emoji: "🥳", BackgroundColor: "#EDE9FE", TextColor: "#5B21B6"}},

	// Nth weekday of month
	{kind: ruleNthWeekday, month: time.January, weekday: time.Monday, n: 3, holiday: Holiday{Name: "Martin Luther King Jr. Day", Emoji: "✊", BackgroundColor: "#E0E7FF", TextColor: "#3730A3"}},
	{kind: ruleNthWeekday, month: time.February, weekday: time.Monday, n: 3, holiday: Holiday{Name: "Presidents' Day", Emoji: "🏛️", BackgroundColor: "#DBEAFE", TextColor: "#1E40AF"}},
	{kind: ruleNthWeekday, month: time.May, weekday: time.Sunday, n: 2, holiday: Holiday{Name: "Mother's Day", Emoji: "💐", BackgroundColor: "#FCE7F3", TextColor: "#9D174D"}},
	{kind: ruleNthWeekday, month: time.June, weekday: time.Sunday, n: 3, holiday: Holiday{Name: "Father's Day", Emoji: "👔", BackgroundColor: "#CFFAFE", TextColor: "#155E75"}},
	{kind: ruleNthWeekday, month: time.September, weekday: time.Monday, n: 1, holiday: Holiday{Name: "Labor Day", Emoji: "🛠️", BackgroundColor: "#FEF3C7", TextColor: "#92400E"}},
	{kind: ruleNthWeekday, month: time.October, weekday: time.Monday, n: 2, holiday: Holiday{Name: "Columbus Day", Emoji: "⛵", BackgroundColor: "#CFFAFE", TextColor: "#155E75"}},
	{kind: ruleNthWeekday, month: time.November, weekday: time.Thursday, n: 4, holiday: Holiday{Name: "Thanksgiving", Emoji: "🦃", BackgroundColor: "#FFEDD5", TextColor: "#9A3412"}},

	// Last weekday of month
	{kind: ruleLastWeekday, month: time.May, weekday: time.Monday, holiday: Holiday{Name: "Memorial Day", Emoji: "🎖️", BackgroundColor: "#E0E7FF", TextColor: "#3730A3"}},

	// Computus
	{kind: ruleEaster, holiday: Holiday{Name: "Easter Sunday", Emoji: "🐰", BackgroundColor: "#EDE9FE", TextColor: "#5B21B6"}},
}

/* =======================================================================
   Date arithmetic
======================================================================= */

// NthWeekdayOfMonth: date of the n-th given weekday in a month.
// offset = (weekday - weekday(1st)) mod 7 normalized into [0,6],
// day = 1 + offset + (n-1)*7.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// LastWeekdayOfMonth: date of the final given weekday in a month.
// offset = (weekday(last) - weekday) mod 7 normalized into [0,6],
// day = lastDay - offset.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	// day 0 of the next month = last day of this month
	last := time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return time.Date(year, month, last.Day()-offset, 12, 0, 0, 0, time.UTC)
}

// EasterSunday computes Easter for a year with the anonymous Gregorian
// computus. Integer division throughout; valid from 1583 on.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func (r rule) dateIn(year int) time.Time {
	switch r.kind {
	case ruleFixed:
		return time.Date(year, r.month, r.day, 12, 0, 0, 0, time.UTC)
	case ruleNthWeekday:
		return NthWeekdayOfMonth(year, r.month, r.weekday, r.n)
	case ruleLastWeekday:
		return LastWeekdayOfMonth(year, r.month, r.weekday)
	default:
		return EasterSunday(year)
	}
}

// DateKey formats a date as the canonical "YYYY-MM-DD" index key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

/* =======================================================================
   Calendar construction & lookup
======================================================================= */

// ForYear returns every observed holiday of one year, keyed by date.
// Works for any year; rules never reject input. In years where two rules
// share a date the later rule's entry survives, so the result can hold
// one entry fewer than the rule count.
func ForYear(year int) Calendar {
	out := make(Calendar, len(rules))
	for _, r := range rules {
		out[DateKey(r.dateIn(year))] = r.holiday
	}
	return out
}

// BuildIndex merges ForYear for every year in [startYear, endYear] into one
// flat calendar. Keys of different years can never collide.
func BuildIndex(startYear, endYear int) Calendar {
	out := make(Calendar, (endYear-startYear+1)*len(rules))
	for y := startYear; y <= endYear; y++ {
		for k, v := range ForYear(y) {
			out[k] = v
		}
	}
	return out
}

// Lookup returns the holiday on a date key, if any. Absence is the normal
// case and not an error.
func Lookup(cal Calendar, dateKey string) (Holiday, bool) {
	h, ok := cal[dateKey]
	return h, ok
}

// ForMonth filters a calendar down to one month's entries.
func ForMonth(cal Calendar, year int, month time.Month) Calendar {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := Calendar{}
	for k, v := range cal {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out[k] = v
		}
	}
	return out
}

// SortedKeys returns a calendar's date keys in ascending date order.
func SortedKeys(cal Calendar) []string {
	keys := make([]string, 0, len(cal))
	for k := range cal {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

/* =======================================================================
   Default index
======================================================================= */

// Index range served to clients. The table is tiny, so a generous window
// costs nothing.
const (
	DefaultStartYear = 2020
	DefaultEndYear   = 2035
)

// DefaultIndex is built once at startup and never mutated after, so it is
// shared by concurrent readers without locking.
var DefaultIndex Calendar

func init() {
	validateRuleTable()
	DefaultIndex = BuildIndex(DefaultStartYear, DefaultEndYear)
}

// validateRuleTable panics when a table edit introduces an overlap the
// overwrite semantics would silently swallow. Checked statically, i.e.
// independent of year:
//   - no two fixed rules share (month, day)
//   - no two floating rules in one month share a weekday
//   - no fixed or floating rule can land inside the Easter window
//     (March 22 – April 25)
//
// The year-dependent Father's Day / Juneteenth overlap is deliberately
// not flagged; it is resolved by table order.
func validateRuleTable() {
	fixedSeen := map[string]string{}
	floatSeen := map[string]string{}
	for _, r := range rules {
		switch r.kind {
		case ruleFixed:
			key := fmt.Sprintf("%02d-%02d", int(r.month), r.day)
			if prev, dup := fixedSeen[key]; dup {
				panic(fmt.Sprintf("holidays: fixed rules %q and %q share %s", prev, r.holiday.Name, key))
			}
			fixedSeen[key] = r.holiday.Name
			if r.month == time.April || (r.month == time.March && r.day >= 22) {
				panic(fmt.Sprintf("holidays: fixed rule %q falls inside the Easter window", r.holiday.Name))
			}
		case ruleNthWeekday, ruleLastWeekday:
			key := fmt.Sprintf("%02d-%d", int(r.month), int(r.weekday))
			if prev, dup := floatSeen[key]; dup {
				panic(fmt.Sprintf("holidays: floating rules %q and %q share month %v weekday %v", prev, r.holiday.Name, r.month, r.weekday))
			}
			floatSeen[key] = r.holiday.Name
			if r.month == time.March || r.month == time.April {
				panic(fmt.Sprintf("holidays: floating rule %q falls inside the Easter window", r.holiday.Name))
			}
		}
	}
}
