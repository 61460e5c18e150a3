// file: internals/features/calendar/holidays/controller/holiday_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	holidayService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/holidays/service"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
)

// GetHolidays
// GET /api/public/holidays?start_year=&end_year=
// Serves the date-keyed holiday index for calendar overlays. The output
// is deterministic, so clients may cache it aggressively.
func GetHolidays(c *fiber.Ctx) error {
	startYear := queryInt(c, "start_year", holidayService.DefaultStartYear)
	endYear := queryInt(c, "end_year", holidayService.DefaultEndYear)

	if startYear > endYear {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_year must not be after end_year")
	}
	if endYear-startYear > 50 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Year range too large (max 50 years)")
	}

	var cal holidayService.Calendar
	if startYear == holidayService.DefaultStartYear && endYear == holidayService.DefaultEndYear {
		cal = holidayService.DefaultIndex
	} else {
		cal = holidayService.BuildIndex(startYear, endYear)
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")

	return helper.JsonOK(c, "Holidays fetched", fiber.Map{
		"start_year": startYear,
		"end_year":   endYear,
		"count":      len(cal),
		"holidays":   cal,
	})
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
