// file: internals/features/calendar/holidays/route/holiday_public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	holidayController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/holidays/controller"
)

// HolidayPublicRoutes serves the holiday index. No auth and no DB: the
// index is computed in-process.
// Base group: /api/public
func HolidayPublicRoutes(public fiber.Router) {
	public.Get("/holidays", holidayController.GetHolidays)
}
