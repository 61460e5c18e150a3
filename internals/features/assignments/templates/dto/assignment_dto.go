// file: internals/features/assignments/templates/dto/assignment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/assignments/templates/model"
)

// =============================
// Request DTOs
// =============================

type AssignmentItemRequest struct {
	AssignmentItemLabel           string `json:"assignment_item_label" validate:"required,min=1,max=150"`
	AssignmentItemDetails         string `json:"assignment_item_details"`
	AssignmentItemDurationMinutes *int   `json:"assignment_item_duration_minutes" validate:"omitempty,min=1,max=600"`
}

type AssignmentTemplateRequest struct {
	AssignmentTemplateTitle       string `json:"assignment_template_title" validate:"required,min=3,max=150"`
	AssignmentTemplateKind        string `json:"assignment_template_kind" validate:"omitempty,oneof=checklist stations"`
	AssignmentTemplateDescription string `json:"assignment_template_description"`

	Items []AssignmentItemRequest `json:"items" validate:"omitempty,max=100,dive"`
}

// AssignmentTemplateUpdateRequest touches the header only; items are
// replaced through their own endpoint.
type AssignmentTemplateUpdateRequest struct {
	AssignmentTemplateTitle       *string `json:"assignment_template_title" validate:"omitempty,min=3,max=150"`
	AssignmentTemplateKind        *string `json:"assignment_template_kind" validate:"omitempty,oneof=checklist stations"`
	AssignmentTemplateDescription *string `json:"assignment_template_description"`
}

type AssignmentItemsReplaceRequest struct {
	Items []AssignmentItemRequest `json:"items" validate:"required,max=100,dive"`
}

// =============================
// Response DTOs
// =============================

type AssignmentItemResponse struct {
	AssignmentItemID         uuid.UUID `json:"assignment_item_id"`
	AssignmentItemTemplateID uuid.UUID `json:"assignment_item_template_id"`

	AssignmentItemPosition        int    `json:"assignment_item_position"`
	AssignmentItemLabel           string `json:"assignment_item_label"`
	AssignmentItemDetails         string `json:"assignment_item_details,omitempty"`
	AssignmentItemDurationMinutes *int   `json:"assignment_item_duration_minutes,omitempty"`
}

type AssignmentTemplateResponse struct {
	AssignmentTemplateID    uuid.UUID `json:"assignment_template_id"`
	AssignmentTemplateHubID uuid.UUID `json:"assignment_template_hub_id"`

	AssignmentTemplateTitle       string `json:"assignment_template_title"`
	AssignmentTemplateKind        string `json:"assignment_template_kind"`
	AssignmentTemplateDescription string `json:"assignment_template_description,omitempty"`

	AssignmentTemplateCreatedBy *uuid.UUID `json:"assignment_template_created_by,omitempty"`
	AssignmentTemplateCreatedAt time.Time  `json:"assignment_template_created_at"`
	AssignmentTemplateUpdatedAt time.Time  `json:"assignment_template_updated_at"`

	ItemCount int                      `json:"item_count"`
	Items     []AssignmentItemResponse `json:"items,omitempty"`
}

// =============================
// Converters
// =============================

func FromModelAssignmentItem(m *model.AssignmentItemModel) AssignmentItemResponse {
	return AssignmentItemResponse{
		AssignmentItemID:              m.AssignmentItemID,
		AssignmentItemTemplateID:      m.AssignmentItemTemplateID,
		AssignmentItemPosition:        m.AssignmentItemPosition,
		AssignmentItemLabel:           m.AssignmentItemLabel,
		AssignmentItemDetails:         valOrEmpty(m.AssignmentItemDetails),
		AssignmentItemDurationMinutes: m.AssignmentItemDurationMinutes,
	}
}

func FromModelAssignmentTemplate(m *model.AssignmentTemplateModel, items []model.AssignmentItemModel) AssignmentTemplateResponse {
	resp := AssignmentTemplateResponse{
		AssignmentTemplateID:          m.AssignmentTemplateID,
		AssignmentTemplateHubID:       m.AssignmentTemplateHubID,
		AssignmentTemplateTitle:       m.AssignmentTemplateTitle,
		AssignmentTemplateKind:        m.AssignmentTemplateKind,
		AssignmentTemplateDescription: valOrEmpty(m.AssignmentTemplateDescription),
		AssignmentTemplateCreatedBy:   m.AssignmentTemplateCreatedBy,
		AssignmentTemplateCreatedAt:   m.AssignmentTemplateCreatedAt,
		AssignmentTemplateUpdatedAt:   m.AssignmentTemplateUpdatedAt,
		ItemCount:                     len(items),
	}
	for i := range items {
		resp.Items = append(resp.Items, FromModelAssignmentItem(&items[i]))
	}
	return resp
}

func (r *AssignmentTemplateRequest) ToModelAssignmentTemplate(hubID, createdBy uuid.UUID) *model.AssignmentTemplateModel {
	kind := strings.ToLower(strings.TrimSpace(r.AssignmentTemplateKind))
	if !model.ValidAssignmentKind(kind) {
		kind = model.AssignmentKindChecklist
	}
	return &model.AssignmentTemplateModel{
		AssignmentTemplateHubID:       hubID,
		AssignmentTemplateTitle:       strings.TrimSpace(r.AssignmentTemplateTitle),
		AssignmentTemplateKind:        kind,
		AssignmentTemplateDescription: optStr(r.AssignmentTemplateDescription),
		AssignmentTemplateCreatedBy:   &createdBy,
	}
}

// BuildAssignmentItems turns the request order into positioned rows.
// Positions always come from array order, never from the client.
// Durations only survive on stations templates.
func BuildAssignmentItems(templateID, hubID uuid.UUID, kind string, reqs []AssignmentItemRequest) []model.AssignmentItemModel {
	items := make([]model.AssignmentItemModel, 0, len(reqs))
	for i, req := range reqs {
		item := model.AssignmentItemModel{
			AssignmentItemTemplateID: templateID,
			AssignmentItemHubID:      hubID,
			AssignmentItemPosition:   i + 1,
			AssignmentItemLabel:      strings.TrimSpace(req.AssignmentItemLabel),
			AssignmentItemDetails:    optStr(req.AssignmentItemDetails),
		}
		if kind == model.AssignmentKindStations {
			item.AssignmentItemDurationMinutes = req.AssignmentItemDurationMinutes
		}
		items = append(items, item)
	}
	return items
}

// ApplyAssignmentTemplateUpdate copies the set header fields and reports
// whether anything changed. A kind switch is reported separately so the
// controller can scrub item durations in the same transaction.
func ApplyAssignmentTemplateUpdate(m *model.AssignmentTemplateModel, r *AssignmentTemplateUpdateRequest) (changed, kindChanged bool) {
	if r.AssignmentTemplateTitle != nil {
		if v := strings.TrimSpace(*r.AssignmentTemplateTitle); v != "" && v != m.AssignmentTemplateTitle {
			m.AssignmentTemplateTitle = v
			changed = true
		}
	}
	if r.AssignmentTemplateKind != nil {
		if v := strings.ToLower(strings.TrimSpace(*r.AssignmentTemplateKind)); model.ValidAssignmentKind(v) && v != m.AssignmentTemplateKind {
			m.AssignmentTemplateKind = v
			changed = true
			kindChanged = true
		}
	}
	if r.AssignmentTemplateDescription != nil {
		m.AssignmentTemplateDescription = optStr(*r.AssignmentTemplateDescription)
		changed = true
	}
	return changed, kindChanged
}

// =============================
// Small helpers
// =============================

func valOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
