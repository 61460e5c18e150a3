// file: internals/features/attendance/records/route/attendance_user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "github.com/rpasek2/V2-Teamhub-sub001/internals/features/attendance/records/controller"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

// AttendanceRoutes wires recording and reading attendance. Recording is
// staff-only (checked in the controller so coaches qualify); reads honor
// the resolved feature scope.
// Base group: /api/u
func AttendanceRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewAttendanceController(db)

	attendance := user.Group("/attendance",
		featuresMw.RequireFeature(permissionService.FeatureAttendance))

	attendance.Post("/events/:event_id", ctrl.BulkUpsert)
	attendance.Get("/events/:event_id/summary", ctrl.EventSummary)
	attendance.Get("/events/:event_id", ctrl.ListByEvent)
	attendance.Get("/athletes/:athlete_id", ctrl.AthleteHistory)
	attendance.Patch("/:id", ctrl.UpdateRecord)
}
