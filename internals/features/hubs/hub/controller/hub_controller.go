// file: internals/features/hubs/hub/controller/hub_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/dto"
	model "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	memberModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HubController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewHubController(db *gorm.DB) *HubController {
	return &HubController{DB: db, Validate: validator.New()}
}

// ========== local helpers ==========

func parseHubID(c *fiber.Ctx) (uuid.UUID, error) {
	s := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid hub id")
	}
	return id, nil
}

func retentionDuration() time.Duration {
	// keep in sync with the storage reaper (default 30 days)
	d := 30
	if v, _ := strconv.Atoi(strings.TrimSpace(os.Getenv("RETENTION_DAYS"))); v > 0 {
		d = v
	}
	return time.Duration(d) * 24 * time.Hour
}

func validTimezone(tz string) bool {
	if strings.TrimSpace(tz) == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func val(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ========== CREATE ==========
// POST /api/a/hubs
// The creating user becomes the hub owner.
func (hc *HubController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var in dto.HubRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := hc.Validate.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}
	if in.HubTimezone != "" && !validTimezone(in.HubTimezone) {
		return helper.JsonValidationError(c, map[string][]string{
			"hub_timezone": {"unknown IANA timezone"},
		})
	}

	m := dto.ToModelHub(&in)

	// slug from the request or the name
	base := m.HubSlug
	if base == "" {
		base = m.HubName
	}
	slug, err := helper.GenerateUniqueSlug(hc.DB, helper.SlugOptions{
		Table:            "hubs",
		SlugColumn:       "hub_slug",
		SoftDeleteColumn: "hub_deleted_at",
		DefaultBase:      "hub",
	}, base)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}
	m.HubSlug = slug

	if err := hc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		owner := &memberModel.HubMemberModel{
			HubMemberHubID:    m.HubID,
			HubMemberUserID:   userID,
			HubMemberRole:     constants.RoleOwner,
			HubMemberIsActive: true,
		}
		return tx.Create(owner).Error
	}); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Hub slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create hub")
	}

	return helper.JsonCreated(c, "Hub created", fiber.Map{
		"item": dto.FromModelHub(m),
	})
}

// ========== LIST (public) ==========
// GET /api/public/hubs?search=&sport=&sort_by=&order=&page=&per_page=
func (hc *HubController) List(c *fiber.Ctx) error {
	// ===== sort & paging =====
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	allowedSort := map[string]string{
		"name":       "hub_name",
		"sport":      "hub_sport",
		"created_at": "hub_created_at",
	}
	orderCol := allowedSort["name"]
	if col, ok := allowedSort[strings.ToLower(p.SortBy)]; ok {
		orderCol = col
	}
	orderDir := "ASC"
	if p.SortOrder == "desc" {
		orderDir = "DESC"
	}

	q := hc.DB.WithContext(c.Context()).
		Model(&model.HubModel{}).
		Where("hub_is_active = ?", true)

	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("hub_name ILIKE ? OR hub_location ILIKE ?", like, like)
	}
	if sport := strings.ToLower(strings.TrimSpace(c.Query("sport"))); sport != "" {
		q = q.Where("hub_sport = ?", sport)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count hubs")
	}

	var rows []model.HubModel
	if err := q.Order(orderCol + " " + orderDir).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hubs")
	}

	items := make([]dto.HubResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelHub(&rows[i]))
	}

	return helper.JsonList(c, "Hubs fetched", items,
		helper.BuildPaginationFromOffset(total, p.Offset(), p.Limit()))
}

// ========== DETAIL (public) ==========
// GET /api/public/hubs/:slug
func (hc *HubController) GetBySlug(c *fiber.Ctx) error {
	slug := helper.NormalizeSlug(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slug")
	}

	var m model.HubModel
	if err := hc.DB.WithContext(c.Context()).
		Where("lower(hub_slug) = lower(?)", slug).
		Where("hub_is_active = ?", true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hub")
	}

	return helper.JsonOK(c, "Hub fetched", fiber.Map{
		"item": dto.FromModelHub(&m),
	})
}

// GET /api/a/hubs/:id
func (hc *HubController) GetByID(c *fiber.Ctx) error {
	id, err := parseHubID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.HubModel
	if err := hc.DB.WithContext(c.Context()).
		First(&m, "hub_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hub")
	}

	return helper.JsonOK(c, "Hub fetched", fiber.Map{
		"item": dto.FromModelHub(&m),
	})
}

// ========== PATCH ==========
// PATCH /api/a/hubs/:id
// Accepts JSON, or multipart with a "payload" part plus a "logo" file.
func (hc *HubController) Patch(c *fiber.Ctx) error {
	id, err := parseHubID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !helperAuth.IsHubAdmin(c, id) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("hub settings"))
	}

	var m model.HubModel
	if err := hc.DB.First(&m, "hub_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hub")
	}
	before := m

	var u dto.HubUpdateRequest
	now := time.Now()
	changedMedia := false
	retainUntil := now.Add(retentionDuration())

	ct := strings.ToLower(c.Get("Content-Type"))

	if strings.HasPrefix(ct, "multipart/form-data") {
		if s := strings.TrimSpace(c.FormValue("payload")); s != "" {
			if err := json.Unmarshal([]byte(s), &u); err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload JSON")
			}
		} else {
			_ = c.BodyParser(&u)
		}

		// -- logo --
		if fh, err := c.FormFile("logo"); err == nil && fh != nil {
			url, upErr := helper.UploadImageToSupabase("hubs/"+id.String(), fh)
			if upErr != nil {
				return helper.JsonError(c, fiber.StatusBadGateway, upErr.Error())
			}
			if m.HubLogoURL != nil && *m.HubLogoURL != "" {
				m.HubLogoTrashURL = m.HubLogoURL
				m.HubLogoDeletePendingUntil = &retainUntil
			}
			m.HubLogoURL = &url
			changedMedia = true
		}
	} else {
		if err := c.BodyParser(&u); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}

	dto.ApplyHubUpdate(&m, &u)

	if u.HubTimezone != nil && !validTimezone(m.HubTimezone) {
		return helper.JsonValidationError(c, map[string][]string{
			"hub_timezone": {"unknown IANA timezone"},
		})
	}

	// re-slug when the slug changed (keep uniqueness)
	if before.HubSlug != m.HubSlug {
		slug, err := helper.GenerateUniqueSlug(hc.DB, helper.SlugOptions{
			Table:            "hubs",
			SlugColumn:       "hub_slug",
			SoftDeleteColumn: "hub_deleted_at",
			DefaultBase:      "hub",
		}, m.HubSlug)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
		}
		m.HubSlug = slug
	}

	m.HubUpdatedAt = now

	// only write columns that changed
	updates := map[string]any{"hub_updated_at": m.HubUpdatedAt}

	if before.HubName != m.HubName {
		updates["hub_name"] = m.HubName
	}
	if before.HubSlug != m.HubSlug {
		updates["hub_slug"] = m.HubSlug
	}
	if before.HubSport != m.HubSport {
		updates["hub_sport"] = m.HubSport
	}
	if val(before.HubDescription) != val(m.HubDescription) {
		updates["hub_description"] = m.HubDescription
	}
	if val(before.HubLocation) != val(m.HubLocation) {
		updates["hub_location"] = m.HubLocation
	}
	if val(before.HubWebsiteURL) != val(m.HubWebsiteURL) {
		updates["hub_website_url"] = m.HubWebsiteURL
	}
	if val(before.HubInstagramURL) != val(m.HubInstagramURL) {
		updates["hub_instagram_url"] = m.HubInstagramURL
	}
	if val(before.HubFacebookURL) != val(m.HubFacebookURL) {
		updates["hub_facebook_url"] = m.HubFacebookURL
	}
	if before.HubTimezone != m.HubTimezone {
		updates["hub_timezone"] = m.HubTimezone
	}
	if before.HubIsActive != m.HubIsActive {
		updates["hub_is_active"] = m.HubIsActive
	}

	if changedMedia {
		updates["hub_logo_url"] = m.HubLogoURL
		updates["hub_logo_trash_url"] = m.HubLogoTrashURL
		updates["hub_logo_delete_pending_until"] = m.HubLogoDeletePendingUntil
	}

	if len(updates) == 1 {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelHub(&m),
		})
	}

	if err := hc.DB.Model(&m).Updates(updates).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Hub slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save changes")
	}

	return helper.JsonUpdated(c, "Hub updated", fiber.Map{
		"item": dto.FromModelHub(&m),
	})
}

// ========== DELETE ==========
// DELETE /api/a/hubs/:id[?hard=true]
// Only the hub owner (or a platform owner) may delete a hub.
// hard=true skips the soft delete and removes the row for good.
func (hc *HubController) Delete(c *fiber.Ctx) error {
	id, err := parseHubID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	role := helperAuth.RoleInHub(c, id)
	if role != constants.RoleOwner && !helperAuth.IsOwner(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("hub deletion"))
	}

	var m model.HubModel
	if err := hc.DB.First(&m, "hub_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch hub")
	}

	q := hc.DB
	hard := strings.EqualFold(strings.TrimSpace(c.Query("hard")), "true")
	if hard {
		q = q.Unscoped()
	}
	if err := q.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete hub")
	}

	return helper.JsonDeleted(c, "Hub deleted", fiber.Map{
		"hub_id": id.String(),
		"hard":   hard,
	})
}

// ========== VERIFY (platform owner) ==========
// POST /api/o/hubs/:id/verify  |  DELETE /api/o/hubs/:id/verify
func (hc *HubController) SetVerified(verified bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseHubID(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		res := hc.DB.WithContext(c.Context()).
			Model(&model.HubModel{}).
			Where("hub_id = ?", id).
			Update("hub_is_verified", verified)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update verification")
		}
		if res.RowsAffected == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Hub not found")
		}

		msg := "Hub verified"
		if !verified {
			msg = "Hub verification revoked"
		}
		return helper.JsonUpdated(c, msg, fiber.Map{
			"hub_id":          id.String(),
			"hub_is_verified": verified,
		})
	}
}
