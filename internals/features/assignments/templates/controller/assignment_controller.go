// file: internals/features/assignments/templates/controller/assignment_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type AssignmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db, Validate: validator.New()}
}

func (ctrl *AssignmentController) loadTemplate(hubID, templateID uuid.UUID) (*model.AssignmentTemplateModel, error) {
	var m model.AssignmentTemplateModel
	err := ctrl.DB.
		Where("assignment_template_id = ? AND assignment_template_hub_id = ?", templateID, hubID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (ctrl *AssignmentController) loadItems(templateID uuid.UUID) ([]model.AssignmentItemModel, error) {
	var items []model.AssignmentItemModel
	err := ctrl.DB.
		Where("assignment_item_template_id = ?", templateID).
		Order("assignment_item_position ASC").
		Find(&items).Error
	return items, err
}

// =============================
// Admin endpoints (hub from token)
// =============================

// CreateAssignment
// POST /api/a/assignments
// Creates the template together with its items in one transaction.
func (ctrl *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.AssignmentTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModelAssignmentTemplate(hubID, userID)
	var items []model.AssignmentItemModel

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		items = dto.BuildAssignmentItems(m.AssignmentTemplateID, hubID, m.AssignmentTemplateKind, req.Items)
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(&items, 50).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}

	return helper.JsonCreated(c, "Assignment created", fiber.Map{
		"item": dto.FromModelAssignmentTemplate(m, items),
	})
}

// UpdateAssignment
// PATCH /api/a/assignments/:id
// Header fields only. Switching a stations template to checklist scrubs
// the now-meaningless item durations in the same transaction.
func (ctrl *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	templateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	m, err := ctrl.loadTemplate(hubID, templateID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssignmentTemplateUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changed, kindChanged := dto.ApplyAssignmentTemplateUpdate(m, &req)
	if !changed {
		items, _ := ctrl.loadItems(templateID)
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelAssignmentTemplate(m, items),
		})
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if kindChanged && m.AssignmentTemplateKind == model.AssignmentKindChecklist {
			return tx.Model(&model.AssignmentItemModel{}).
				Where("assignment_item_template_id = ?", templateID).
				Update("assignment_item_duration_minutes", nil).Error
		}
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}

	items, _ := ctrl.loadItems(templateID)
	return helper.JsonUpdated(c, "Assignment updated", fiber.Map{
		"item": dto.FromModelAssignmentTemplate(m, items),
	})
}

// ReplaceItems
// PUT /api/a/assignments/:id/items
// Replaces the whole item list; array order becomes the new positions.
func (ctrl *AssignmentController) ReplaceItems(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	templateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	m, err := ctrl.loadTemplate(hubID, templateID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssignmentItemsReplaceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	items := dto.BuildAssignmentItems(templateID, m.AssignmentTemplateHubID, m.AssignmentTemplateKind, req.Items)

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("assignment_item_template_id = ?", templateID).
			Delete(&model.AssignmentItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(&items, 50).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to replace items")
	}

	return helper.JsonUpdated(c, "Items replaced", fiber.Map{
		"item": dto.FromModelAssignmentTemplate(m, items),
	})
}

// DeleteAssignment
// DELETE /api/a/assignments/:id?hard=true
// Items go with the template, in one transaction.
func (ctrl *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	templateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard {
		role := helperAuth.RoleInHub(c, hubID)
		if !constants.RoleIn(role, constants.LeadershipRoles) && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
		}
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		itemQ := tx.Where("assignment_item_template_id = ?", templateID)
		tmplQ := tx.Where("assignment_template_id = ? AND assignment_template_hub_id = ?", templateID, hubID)
		if hard {
			itemQ = itemQ.Unscoped()
			tmplQ = tmplQ.Unscoped()
		}

		if err := itemQ.Delete(&model.AssignmentItemModel{}).Error; err != nil {
			return err
		}
		res := tmplQ.Delete(&model.AssignmentTemplateModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}

	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{
		"assignment_template_id": templateID,
		"hard":                   hard,
	})
}

// =============================
// Member endpoints
// =============================

// templateRow carries the live item count alongside the header.
type templateRow struct {
	model.AssignmentTemplateModel
	ItemCount int `json:"item_count"`
}

// ListAssignments
// GET /api/u/assignments?kind=&search=&page=&per_page=
func (ctrl *AssignmentController) ListAssignments(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.
		Table("assignment_templates").
		Where("assignment_template_hub_id = ?", hubID).
		Where("assignment_template_deleted_at IS NULL")

	if kind := strings.ToLower(strings.TrimSpace(c.Query("kind"))); kind != "" {
		if !model.ValidAssignmentKind(kind) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown assignment kind")
		}
		q = q.Where("assignment_template_kind = ?", kind)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("assignment_template_title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var rows []templateRow
	if err := q.
		Select(`assignment_templates.*,
			(SELECT COUNT(*) FROM assignment_items ai
			 WHERE ai.assignment_item_template_id = assignment_templates.assignment_template_id
			   AND ai.assignment_item_deleted_at IS NULL) AS item_count`).
		Order("assignment_template_title ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}

	items := make([]dto.AssignmentTemplateResponse, 0, len(rows))
	for i := range rows {
		resp := dto.FromModelAssignmentTemplate(&rows[i].AssignmentTemplateModel, nil)
		resp.ItemCount = rows[i].ItemCount
		items = append(items, resp)
	}

	return helper.JsonList(c, "Assignments fetched", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetAssignment
// GET /api/u/assignments/:id
func (ctrl *AssignmentController) GetAssignment(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	templateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	m, err := ctrl.loadTemplate(hubID, templateID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := ctrl.loadItems(templateID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load items")
	}

	return helper.JsonOK(c, "Assignment fetched", fiber.Map{
		"item": dto.FromModelAssignmentTemplate(m, items),
	})
}
