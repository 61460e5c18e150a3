// file: internals/features/calendar/events/controller/calendar_month_controller.go
package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/model"
	holidayService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/holidays/service"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/dbtime"
)

// CalendarDay is one cell of the month view. A day only shows up when
// it has at least one event or a holiday.
type CalendarDay struct {
	Events  []dto.EventResponse     `json:"events,omitempty"`
	Holiday *holidayService.Holiday `json:"holiday,omitempty"`
}

// GetMonthView
// GET /api/u/calendar?month=YYYY-MM
// Events are bucketed per day in the hub's timezone, with the US holiday
// overlay merged in from the default index.
func (ctrl *EventController) GetMonthView(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// The hub's timezone decides which day a timestamp lands on.
	var tzName string
	if err := ctrl.DB.
		Table("hubs").
		Select("hub_timezone").
		Where("hub_id = ? AND hub_deleted_at IS NULL", hubID).
		Scan(&tzName).Error; err == nil && tzName != "" {
		c.Locals(dbtime.LocHubTimezone, tzName)
	}
	loc := dbtime.GetHubLocation(c)

	year, month, ok := parseMonthQuery(c.Query("month"))
	if !ok {
		now := time.Now().In(loc)
		year, month = now.Year(), now.Month()
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var rows []model.EventModel
	if err := ctrl.DB.
		Where("event_hub_id = ?", hubID).
		Where("event_starts_at < ?", monthEnd).
		Where("COALESCE(event_ends_at, event_starts_at) >= ?", monthStart).
		Order("event_starts_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load calendar")
	}

	days := map[string]*CalendarDay{}
	day := func(key string) *CalendarDay {
		if d, ok := days[key]; ok {
			return d
		}
		d := &CalendarDay{}
		days[key] = d
		return d
	}

	for i := range rows {
		resp := dto.FromModelEvent(&rows[i])

		// A multi-day event appears on every day it covers, clamped to
		// the requested month.
		first := rows[i].EventStartsAt.In(loc)
		last := first
		if rows[i].EventEndsAt != nil {
			last = rows[i].EventEndsAt.In(loc)
		}
		cur := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
		if cur.Before(monthStart) {
			cur = monthStart
		}
		for !cur.After(last) && cur.Before(monthEnd) {
			d := day(holidayService.DateKey(cur))
			d.Events = append(d.Events, resp)
			cur = cur.AddDate(0, 0, 1)
		}
	}

	for key, h := range holidayService.ForMonth(holidayService.DefaultIndex, year, month) {
		holiday := h
		day(key).Holiday = &holiday
	}

	return helper.JsonOK(c, "Calendar fetched", fiber.Map{
		"month":    fmt.Sprintf("%04d-%02d", year, int(month)),
		"timezone": loc.String(),
		"days":     days,
	})
}

func parseMonthQuery(s string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
