// file: internals/features/attendance/records/controller/attendance_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/attendance/records/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/attendance/records/model"
	eventModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/model"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	athleteModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/roster/athletes/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
	featuresMw "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/features"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validate: validator.New()}
}

// requireStaff rejects members; recording attendance is a staff act
// regardless of the configured feature scope.
func requireStaff(c *fiber.Ctx, hubID uuid.UUID) error {
	role := helperAuth.RoleInHub(c, hubID)
	if !constants.RoleIn(role, constants.StaffRoles) && !helperAuth.IsOwner(c) {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff("attendance recording"))
	}
	return nil
}

func (ctrl *AttendanceController) eventInHub(eventID, hubID uuid.UUID) error {
	var ev eventModel.EventModel
	err := ctrl.DB.
		Select("event_id").
		Where("event_id = ? AND event_hub_id = ?", eventID, hubID).
		Take(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Event not found")
	}
	return err
}

// =============================
// Staff endpoints
// =============================

// BulkUpsert
// POST /api/u/attendance/events/:event_id
// Marks a whole event in one statement; re-marking an athlete updates
// the existing row (the event+athlete pair is unique).
func (ctrl *AttendanceController) BulkUpsert(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := requireStaff(c, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	eventID, err := helper.ParseUUIDParam(c, "event_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}
	if err := ctrl.eventInHub(eventID, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AttendanceBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Last mark wins when an athlete appears twice; ON CONFLICT cannot
	// touch the same row twice in one statement.
	byAthlete := make(map[uuid.UUID]dto.AttendanceMarkRequest, len(req.Records))
	order := make([]uuid.UUID, 0, len(req.Records))
	for _, rec := range req.Records {
		if _, seen := byAthlete[rec.AttendanceAthleteID]; !seen {
			order = append(order, rec.AttendanceAthleteID)
		}
		byAthlete[rec.AttendanceAthleteID] = rec
	}

	var known int64
	if err := ctrl.DB.Model(&athleteModel.AthleteModel{}).
		Where("athlete_id IN ? AND athlete_hub_id = ?", order, hubID).
		Count(&known).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify athletes")
	}
	if known != int64(len(order)) {
		return helper.JsonValidationError(c, map[string][]string{
			"records": {"one or more athletes do not belong to this hub"},
		})
	}

	rows := make([]model.AttendanceModel, 0, len(order))
	for _, athleteID := range order {
		rec := byAthlete[athleteID]
		rows = append(rows, rec.ToModelAttendance(hubID, eventID, userID))
	}

	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_event_id"},
			{Name: "attendance_athlete_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"attendance_status",
			"attendance_note",
			"attendance_recorded_by",
			"attendance_updated_at",
			// Re-marking revives a soft-deleted row.
			"attendance_deleted_at",
		}),
	}).Create(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	items := make([]dto.AttendanceResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelAttendance(&rows[i]))
	}

	return helper.JsonOK(c, "Attendance recorded", fiber.Map{
		"event_id": eventID,
		"marked":   len(items),
		"items":    items,
	})
}

// UpdateRecord
// PATCH /api/u/attendance/:id
func (ctrl *AttendanceController) UpdateRecord(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := requireStaff(c, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}
	recordID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var m model.AttendanceModel
	if err := ctrl.DB.
		Where("attendance_id = ? AND attendance_hub_id = ?", recordID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance record")
	}

	var req dto.AttendanceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changed := false
	if req.AttendanceStatus != nil {
		if v := strings.ToLower(strings.TrimSpace(*req.AttendanceStatus)); model.ValidAttendanceStatus(v) && v != m.AttendanceStatus {
			m.AttendanceStatus = v
			changed = true
		}
	}
	if req.AttendanceNote != nil {
		m.AttendanceNote = optNote(*req.AttendanceNote)
		changed = true
	}
	if !changed {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelAttendance(&m),
		})
	}

	userID, err := helperAuth.GetUserIDFromToken(c)
	if err == nil {
		m.AttendanceRecordedBy = &userID
	}

	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update attendance record")
	}

	return helper.JsonUpdated(c, "Attendance updated", fiber.Map{
		"item": dto.FromModelAttendance(&m),
	})
}

// =============================
// Reads
// =============================

// attendanceRow carries the athlete's name alongside the record.
type attendanceRow struct {
	model.AttendanceModel
	AthleteName string `json:"athlete_name"`
}

// ListByEvent
// GET /api/u/attendance/events/:event_id
// Scope all sees the whole event; scope own only the caller's athletes.
func (ctrl *AttendanceController) ListByEvent(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "event_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}
	if err := ctrl.eventInHub(eventID, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.
		Table("attendance_records").
		Select("attendance_records.*, (a.athlete_first_name || ' ' || a.athlete_last_name) AS athlete_name").
		Joins("JOIN athletes a ON a.athlete_id = attendance_records.attendance_athlete_id AND a.athlete_deleted_at IS NULL").
		Where("attendance_event_id = ? AND attendance_hub_id = ?", eventID, hubID).
		Where("attendance_deleted_at IS NULL")

	if featuresMw.FeatureScope(c) == permissionService.ScopeOwn {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		q = q.Where("a.athlete_guardian_user_id = ? OR a.athlete_user_id = ?", userID, userID)
	}

	var rows []attendanceRow
	if err := q.
		Order("a.athlete_last_name ASC, a.athlete_first_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}

	items := make([]dto.AttendanceResponse, 0, len(rows))
	for i := range rows {
		item := dto.FromModelAttendance(&rows[i].AttendanceModel)
		item.AthleteName = rows[i].AthleteName
		items = append(items, item)
	}

	return helper.JsonOK(c, "Attendance fetched", fiber.Map{
		"event_id": eventID,
		"items":    items,
		"total":    len(items),
	})
}

// historyRow carries the event header alongside the record.
type historyRow struct {
	model.AttendanceModel
	EventTitle    string    `json:"event_title"`
	EventStartsAt time.Time `json:"event_starts_at"`
}

// AthleteHistory
// GET /api/u/attendance/athletes/:athlete_id?from=&to=&page=&per_page=
func (ctrl *AttendanceController) AthleteHistory(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	athleteID, err := helper.ParseUUIDParam(c, "athlete_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid athlete id")
	}

	var athlete athleteModel.AthleteModel
	if err := ctrl.DB.
		Select("athlete_id, athlete_user_id, athlete_guardian_user_id").
		Where("athlete_id = ? AND athlete_hub_id = ?", athleteID, hubID).
		First(&athlete).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load athlete")
	}

	if featuresMw.FeatureScope(c) == permissionService.ScopeOwn {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		linked := (athlete.AthleteGuardianUserID != nil && *athlete.AthleteGuardianUserID == userID) ||
			(athlete.AthleteUserID != nil && *athlete.AthleteUserID == userID)
		if !linked {
			return helper.JsonError(c, fiber.StatusNotFound, "Athlete not found")
		}
	}

	q := ctrl.DB.
		Table("attendance_records").
		Select("attendance_records.*, e.event_title, e.event_starts_at").
		Joins("JOIN events e ON e.event_id = attendance_records.attendance_event_id").
		Where("attendance_athlete_id = ? AND attendance_hub_id = ?", athleteID, hubID).
		Where("attendance_deleted_at IS NULL")

	if from, ok := parseTimeQuery(c.Query("from")); ok {
		q = q.Where("e.event_starts_at >= ?", from)
	}
	if to, ok := parseTimeQuery(c.Query("to")); ok {
		q = q.Where("e.event_starts_at < ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attendance")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var rows []historyRow
	if err := q.
		Order("e.event_starts_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load history")
	}

	items := make([]dto.AttendanceHistoryEntry, 0, len(rows))
	for i := range rows {
		items = append(items, dto.AttendanceHistoryEntry{
			AttendanceResponse: dto.FromModelAttendance(&rows[i].AttendanceModel),
			EventTitle:         rows[i].EventTitle,
			EventStartsAt:      rows[i].EventStartsAt,
		})
	}

	return helper.JsonList(c, "Attendance history fetched", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// EventSummary
// GET /api/u/attendance/events/:event_id/summary
// Roll-up counts per status. Full-scope readers only.
func (ctrl *AttendanceController) EventSummary(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if featuresMw.FeatureScope(c) != permissionService.ScopeAll {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this feature")
	}
	eventID, err := helper.ParseUUIDParam(c, "event_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}
	if err := ctrl.eventInHub(eventID, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var counts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	if err := ctrl.DB.Model(&model.AttendanceModel{}).
		Select("attendance_status AS status, COUNT(*) AS count").
		Where("attendance_event_id = ? AND attendance_hub_id = ?", eventID, hubID).
		Group("attendance_status").
		Scan(&counts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to summarize attendance")
	}

	var summary dto.AttendanceSummary
	for _, row := range counts {
		summary.Total += row.Count
		switch row.Status {
		case model.AttendanceStatusPresent:
			summary.Present = row.Count
		case model.AttendanceStatusAbsent:
			summary.Absent = row.Count
		case model.AttendanceStatusLate:
			summary.Late = row.Count
		case model.AttendanceStatusExcused:
			summary.Excused = row.Count
		}
	}

	return helper.JsonOK(c, "Attendance summary fetched", fiber.Map{
		"event_id": eventID,
		"summary":  summary,
	})
}

// =============================
// Small helpers
// =============================

func optNote(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseTimeQuery(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
