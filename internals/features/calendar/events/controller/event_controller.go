// file: internals/features/calendar/events/controller/event_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/calendar/events/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type EventController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db, Validate: validator.New()}
}

// slugs are unique per hub among alive rows
func eventSlugScope(hubID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("event_hub_id = ? AND event_deleted_at IS NULL", hubID)
	}
}

// =============================
// Admin endpoints (hub from token)
// =============================

// CreateEvent
// POST /api/a/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.EventEndsAt != nil && !req.EventEndsAt.After(req.EventStartsAt) {
		return helper.JsonValidationError(c, map[string][]string{
			"event_ends_at": {"must be after event_starts_at"},
		})
	}

	m := req.ToModelEvent(hubID, userID)

	slugBase := helper.Slugify(req.EventSlug, 150)
	if req.EventSlug == "" {
		slugBase = helper.Slugify(req.EventTitle, 150)
	}
	slug, err := helper.EnsureUniqueSlugCI(
		c.Context(), ctrl.DB,
		"events", "event_slug",
		slugBase,
		eventSlugScope(hubID),
		150,
	)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate event slug")
	}
	m.EventSlug = slug

	if err := ctrl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Event slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	return helper.JsonCreated(c, "Event created", fiber.Map{
		"item": dto.FromModelEvent(m),
	})
}

// UpdateEvent
// PATCH /api/a/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var m model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_hub_id = ?", eventID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changed := dto.ApplyEventUpdate(&m, &req)

	if req.EventSlug != nil {
		if want := helper.Slugify(*req.EventSlug, 150); want != "" && want != m.EventSlug {
			slug, err := helper.EnsureUniqueSlugCI(
				c.Context(), ctrl.DB,
				"events", "event_slug",
				want,
				func(q *gorm.DB) *gorm.DB {
					return q.Where(
						"event_hub_id = ? AND event_id <> ? AND event_deleted_at IS NULL",
						hubID, m.EventID,
					)
				},
				150,
			)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate event slug")
			}
			m.EventSlug = slug
			changed = true
		}
	}

	if m.EventEndsAt != nil && !m.EventEndsAt.After(m.EventStartsAt) {
		return helper.JsonValidationError(c, map[string][]string{
			"event_ends_at": {"must be after event_starts_at"},
		})
	}

	if !changed {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelEvent(&m),
		})
	}

	if err := ctrl.DB.Save(&m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Event slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}

	return helper.JsonUpdated(c, "Event updated", fiber.Map{
		"item": dto.FromModelEvent(&m),
	})
}

// DeleteEvent
// DELETE /api/a/events/:id?hard=true
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard {
		role := helperAuth.RoleInHub(c, hubID)
		if role != constants.RoleOwner && role != constants.RoleDirector && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
		}
	}

	q := ctrl.DB.Where("event_id = ? AND event_hub_id = ?", eventID, hubID)
	if hard {
		q = q.Unscoped()
	}
	res := q.Delete(&model.EventModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	return helper.JsonDeleted(c, "Event deleted", fiber.Map{
		"event_id": eventID,
		"hard":     hard,
	})
}

// =============================
// Member endpoints
// =============================

// ListEvents
// GET /api/u/events?from=&to=&category=&search=&page=&per_page=
// The calendar is hub-wide shared data: the feature gate decides whether
// the caller sees it at all, rows are never narrowed per member.
func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.Model(&model.EventModel{}).
		Where("event_hub_id = ?", hubID)

	if from, ok := parseTimeQuery(c.Query("from")); ok {
		q = q.Where("COALESCE(event_ends_at, event_starts_at) >= ?", from)
	}
	if to, ok := parseTimeQuery(c.Query("to")); ok {
		q = q.Where("event_starts_at < ?", to)
	}
	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		if !model.ValidEventCategory(category) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown event category")
		}
		q = q.Where("event_category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("event_title ILIKE ? OR event_location ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var rows []model.EventModel
	if err := q.
		Order("event_starts_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list events")
	}

	items := make([]dto.EventResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelEvent(&rows[i]))
	}

	return helper.JsonList(c, "Events fetched", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetEvent
// GET /api/u/events/:id
func (ctrl *EventController) GetEvent(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var m model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_hub_id = ?", eventID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	return helper.JsonOK(c, "Event fetched", fiber.Map{
		"item": dto.FromModelEvent(&m),
	})
}

// parseTimeQuery accepts RFC3339 or a bare date.
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
