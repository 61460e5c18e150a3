// internals/route/details/team_routes.go
package details

import (
	// ====== Team features ======
	AssignmentRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/route"
	AttendanceRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/attendance/records/route"
	EventRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/route"
	HolidayRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/holidays/route"
	ChannelRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/route"
	MessageRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/route"
	AthleteRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/route"
	StaffProfileRoutes "github.com/rpasek2/V2-Teamhub-sub001/internals/features/staff/profiles/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== PUBLIC ===================== */
// Holiday calendar and hub staff pages, no login required.
func TeamPublicRoutes(r fiber.Router, db *gorm.DB) {
	HolidayRoutes.HolidayPublicRoutes(r)
	StaffProfileRoutes.StaffProfilePublicRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */
// Member-facing endpoints; each group resolves the caller's feature
// scope through the permission middleware.
func TeamUserRoutes(r fiber.Router, db *gorm.DB) {
	AthleteRoutes.AthleteUserRoutes(r, db)
	EventRoutes.EventUserRoutes(r, db)
	ChannelRoutes.ChannelUserRoutes(r, db)
	MessageRoutes.MessageUserRoutes(r, db)
	AssignmentRoutes.AssignmentUserRoutes(r, db)
	AttendanceRoutes.AttendanceRoutes(r, db)
	StaffProfileRoutes.StaffProfileUserRoutes(r, db)
}

/* ===================== ADMIN (per hub) ===================== */
func TeamAdminRoutes(r fiber.Router, db *gorm.DB) {
	AthleteRoutes.AthleteAdminRoutes(r, db)
	EventRoutes.EventAdminRoutes(r, db)
	ChannelRoutes.ChannelAdminRoutes(r, db)
	AssignmentRoutes.AssignmentAdminRoutes(r, db)
}
