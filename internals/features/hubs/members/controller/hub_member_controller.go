// internals/features/hubs/members/controller/hub_member_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type HubMemberController struct {
	DB *gorm.DB
}

func NewHubMemberController(db *gorm.DB) *HubMemberController {
	return &HubMemberController{DB: db}
}

/* =========================================================
   Helpers (local)
   ========================================================= */

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// roleRank orders roles for the "who may grant what" check.
func roleRank(role string) int {
	switch role {
	case constants.RoleOwner:
		return 5
	case constants.RoleDirector:
		return 4
	case constants.RoleAdmin:
		return 3
	case constants.RoleCoach:
		return 2
	case constants.RoleParent, constants.RoleGymnast:
		return 1
	default:
		return 0
	}
}

// canGrant: owners grant anything (including owner); everyone else
// only grants roles strictly below their own.
func canGrant(actorRole, targetRole string) bool {
	if actorRole == constants.RoleOwner {
		return true
	}
	return roleRank(actorRole) > roleRank(targetRole)
}

// requireHubAdmin resolves the acting hub from the token claims and
// checks the caller is at least an admin there. Platform owners pass.
func requireHubAdmin(c *fiber.Ctx) (uuid.UUID, string, error) {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	actorRole := helperAuth.RoleInHub(c, hubID)
	if helperAuth.IsOwner(c) {
		actorRole = constants.RoleOwner
	}
	if !helperAuth.IsHubAdmin(c, hubID) {
		return uuid.Nil, "", fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("member management"))
	}
	return hubID, actorRole, nil
}

// countOtherActiveOwners: active owner rows in the hub other than excludeID.
func countOtherActiveOwners(tx *gorm.DB, hubID, excludeID uuid.UUID) (int64, error) {
	var cnt int64
	err := tx.Model(&model.HubMemberModel{}).
		Where("hub_member_hub_id = ?", hubID).
		Where("hub_member_role = ?", constants.RoleOwner).
		Where("hub_member_is_active = TRUE").
		Where("hub_member_id <> ?", excludeID).
		Count(&cnt).Error
	return cnt, err
}

/* =========================================================
   POST /api/a/hub-members
   Body: { "hub_member_user_id": "..." | "user_email": "...",
           "hub_member_role": "coach" }
   Behaviour:
     - hub comes from the token, never the body
     - upsert: a soft-deleted or inactive membership is revived
     - already an active member with the same role → idempotent 200
     - already an active member with another role → 409 (use change-role)
   ========================================================= */
func (ctrl *HubMemberController) AddMember(c *fiber.Ctx) error {
	hubID, actorRole, err := requireHubAdmin(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.HubMemberAddRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	role := norm(body.HubMemberRole)
	if role == "" {
		role = constants.RoleParent
	}
	if !constants.ValidRole(role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role: "+role)
	}
	if !canGrant(actorRole, role) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("granting the "+role+" role"))
	}

	// resolve the target user (by id, else by email)
	var target struct {
		ID       uuid.UUID
		IsActive bool
	}
	q := ctrl.DB.Table("users").Select("id, is_active").Where("deleted_at IS NULL")
	switch {
	case body.HubMemberUserID != uuid.Nil:
		q = q.Where("id = ?", body.HubMemberUserID)
	case strings.TrimSpace(body.UserEmail) != "":
		q = q.Where("lower(email) = lower(?)", strings.TrimSpace(body.UserEmail))
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "hub_member_user_id or user_email is required")
	}
	if err := q.Take(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !target.IsActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "User account is deactivated")
	}

	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// the unique pair index counts soft-deleted rows too, so look those up as well
		var existing model.HubMemberModel
		err := tx.Unscoped().
			Where("hub_member_hub_id = ? AND hub_member_user_id = ?", hubID, target.ID).
			First(&existing).Error

		switch {
		case err == nil:
			alive := !existing.HubMemberDeletedAt.Valid
			if alive && existing.HubMemberIsActive {
				if existing.HubMemberRole == role {
					return helper.JsonUpdated(c, "User is already a member of this hub (idempotent)", dto.ToHubMemberResponse(&existing))
				}
				return helper.JsonError(c, fiber.StatusConflict, "User is already a member with a different role; use change-role")
			}
			// revive: clear the soft delete, activate, apply the requested role
			updates := map[string]any{
				"hub_member_deleted_at": nil,
				"hub_member_is_active":  true,
				"hub_member_role":       role,
			}
			if e := tx.Unscoped().Model(&model.HubMemberModel{}).
				Where("hub_member_id = ?", existing.HubMemberID).
				Updates(updates).Error; e != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to re-activate membership")
			}
			existing.HubMemberDeletedAt = gorm.DeletedAt{}
			existing.HubMemberIsActive = true
			existing.HubMemberRole = role
			return helper.JsonUpdated(c, "Membership re-activated", dto.ToHubMemberResponse(&existing))

		case errors.Is(err, gorm.ErrRecordNotFound):
			m := &model.HubMemberModel{
				HubMemberHubID:    hubID,
				HubMemberUserID:   target.ID,
				HubMemberRole:     role,
				HubMemberIsActive: true,
			}
			if e := tx.Create(m).Error; e != nil {
				msg := strings.ToLower(e.Error())
				if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
					return helper.JsonError(c, fiber.StatusConflict, "User is already a member of this hub")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add member")
			}
			return helper.JsonCreated(c, "Member added", dto.ToHubMemberResponse(m))

		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing membership")
		}
	})
}

/* =========================================================
   GET /api/a/hub-members?role=&active=&search=&page=&per_page=
   ========================================================= */
func (ctrl *HubMemberController) ListMembers(c *fiber.Ctx) error {
	hubID, _, err := requireHubAdmin(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	type memberRow struct {
		model.HubMemberModel
		UserName string `gorm:"column:user_name"`
		FullName string `gorm:"column:full_name"`
		Email    string `gorm:"column:email"`
	}

	q := ctrl.DB.WithContext(c.Context()).
		Table("hub_members").
		Select("hub_members.*, users.user_name, users.full_name, users.email").
		Joins("JOIN users ON users.id = hub_members.hub_member_user_id").
		Where("hub_member_hub_id = ?", hubID).
		Where("hub_member_deleted_at IS NULL")

	if role := norm(c.Query("role")); role != "" {
		if !constants.ValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role: "+role)
		}
		q = q.Where("hub_member_role = ?", role)
	}
	switch norm(c.Query("active")) {
	case "", "true":
		q = q.Where("hub_member_is_active = TRUE")
	case "false":
		q = q.Where("hub_member_is_active = FALSE")
	case "all":
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "active must be true, false, or all")
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("users.user_name ILIKE ? OR users.full_name ILIKE ? OR users.email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count members")
	}

	p := helper.ResolvePaging(c, 20, 100)

	var rows []memberRow
	if err := q.Order("hub_member_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}

	out := make([]dto.HubMemberResponse, 0, len(rows))
	for i := range rows {
		r := dto.ToHubMemberResponse(&rows[i].HubMemberModel)
		r.UserName = rows[i].UserName
		r.FullName = rows[i].FullName
		r.Email = rows[i].Email
		out = append(out, r)
	}

	return helper.JsonList(c, "Members fetched", out,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =========================================================
   PUT /api/a/hub-members/:id/role
   Leadership only. The last active owner cannot be demoted.
   ========================================================= */
func (ctrl *HubMemberController) ChangeRole(c *fiber.Ctx) error {
	hubID, actorRole, err := requireHubAdmin(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if actorRole != constants.RoleOwner && actorRole != constants.RoleDirector {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("member role changes"))
	}

	memberID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid member id")
	}

	var body dto.HubMemberChangeRoleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	newRole := norm(body.HubMemberRole)
	if !constants.ValidRole(newRole) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role: "+newRole)
	}
	if !canGrant(actorRole, newRole) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("granting the "+newRole+" role"))
	}

	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var m model.HubMemberModel
		if err := tx.
			Where("hub_member_id = ? AND hub_member_hub_id = ?", memberID, hubID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
		}

		// directors may not touch owner rows
		if m.HubMemberRole == constants.RoleOwner && actorRole != constants.RoleOwner {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("changing an owner's role"))
		}

		if m.HubMemberRole == newRole {
			return helper.JsonUpdated(c, "Role unchanged (idempotent)", dto.ToHubMemberResponse(&m))
		}

		// last-owner protection
		if m.HubMemberRole == constants.RoleOwner && newRole != constants.RoleOwner {
			others, err := countOtherActiveOwners(tx, hubID, m.HubMemberID)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check owners")
			}
			if others == 0 {
				return helper.JsonError(c, fiber.StatusConflict, "Cannot demote the last owner of a hub")
			}
		}

		if err := tx.Model(&model.HubMemberModel{}).
			Where("hub_member_id = ?", m.HubMemberID).
			Update("hub_member_role", newRole).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to change role")
		}
		m.HubMemberRole = newRole

		log.Printf("[INFO] member role changed hub=%s member=%s role=%s", hubID, m.HubMemberID, newRole)
		return helper.JsonUpdated(c, "Role changed; takes effect on the member's next login or token refresh", dto.ToHubMemberResponse(&m))
	})
}

/* =========================================================
   PUT /api/a/hub-members/:id/deactivate
   PUT /api/a/hub-members/:id/reactivate
   ========================================================= */
func (ctrl *HubMemberController) SetActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hubID, actorRole, err := requireHubAdmin(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}

		memberID, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid member id")
		}

		return ctrl.DB.Transaction(func(tx *gorm.DB) error {
			var m model.HubMemberModel
			if err := tx.
				Where("hub_member_id = ? AND hub_member_hub_id = ?", memberID, hubID).
				First(&m).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
			}

			if m.HubMemberRole == constants.RoleOwner && actorRole != constants.RoleOwner {
				return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("managing an owner's membership"))
			}

			if m.HubMemberIsActive == active {
				return helper.JsonUpdated(c, "Membership unchanged (idempotent)", dto.ToHubMemberResponse(&m))
			}

			if !active && m.HubMemberRole == constants.RoleOwner {
				others, err := countOtherActiveOwners(tx, hubID, m.HubMemberID)
				if err != nil {
					return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check owners")
				}
				if others == 0 {
					return helper.JsonError(c, fiber.StatusConflict, "Cannot deactivate the last owner of a hub")
				}
			}

			if err := tx.Model(&model.HubMemberModel{}).
				Where("hub_member_id = ?", m.HubMemberID).
				Update("hub_member_is_active", active).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update membership")
			}
			m.HubMemberIsActive = active

			msg := "Membership deactivated"
			if active {
				msg = "Membership re-activated"
			}
			return helper.JsonUpdated(c, msg, dto.ToHubMemberResponse(&m))
		})
	}
}

/* =========================================================
   DELETE /api/a/hub-members/:id[?hard=true]
   Hard delete is for leadership only.
   ========================================================= */
func (ctrl *HubMemberController) RemoveMember(c *fiber.Ctx) error {
	hubID, actorRole, err := requireHubAdmin(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	memberID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid member id")
	}

	hard := strings.EqualFold(strings.TrimSpace(c.Query("hard")), "true")
	if hard && actorRole != constants.RoleOwner && actorRole != constants.RoleDirector {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("hard-deleting memberships"))
	}

	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var m model.HubMemberModel
		if err := tx.
			Where("hub_member_id = ? AND hub_member_hub_id = ?", memberID, hubID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
		}

		if m.HubMemberRole == constants.RoleOwner {
			if actorRole != constants.RoleOwner {
				return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("removing an owner"))
			}
			others, err := countOtherActiveOwners(tx, hubID, m.HubMemberID)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check owners")
			}
			if others == 0 {
				return helper.JsonError(c, fiber.StatusConflict, "Cannot remove the last owner of a hub")
			}
		}

		q := tx
		if hard {
			q = q.Unscoped()
		}
		if err := q.Delete(&m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove member")
		}

		return helper.JsonDeleted(c, "Member removed", fiber.Map{
			"hub_member_id": memberID.String(),
			"hard":          hard,
		})
	})
}

/* =========================================================
   POST /api/u/hub-members/leave
   Body: { "hub_id": "..." }
   Self-service; the last active owner cannot leave.
   ========================================================= */
func (ctrl *HubMemberController) Leave(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.HubMemberLeaveRequest
	if err := c.BodyParser(&body); err != nil || body.HubID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "hub_id is required")
	}

	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var m model.HubMemberModel
		if err := tx.
			Where("hub_member_hub_id = ? AND hub_member_user_id = ?", body.HubID, userID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "You are not a member of this hub")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
		}

		if m.HubMemberRole == constants.RoleOwner {
			others, err := countOtherActiveOwners(tx, body.HubID, m.HubMemberID)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check owners")
			}
			if others == 0 {
				return helper.JsonError(c, fiber.StatusConflict, "The last owner cannot leave; transfer ownership first")
			}
		}

		if err := tx.Delete(&m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to leave hub")
		}

		return helper.JsonDeleted(c, "You left the hub", fiber.Map{
			"hub_id": body.HubID.String(),
		})
	})
}
