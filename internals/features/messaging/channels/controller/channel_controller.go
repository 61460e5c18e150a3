// file: internals/features/messaging/channels/controller/channel_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/model"
	messageModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type ChannelController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewChannelController(db *gorm.DB) *ChannelController {
	return &ChannelController{DB: db, Validate: validator.New()}
}

func channelSlugOptions(hubID uuid.UUID) helper.SlugOptions {
	return helper.SlugOptions{
		Table:            "channels",
		SlugColumn:       "channel_slug",
		SoftDeleteColumn: "channel_deleted_at",
		Filters:          map[string]any{"channel_hub_id": hubID},
		DefaultBase:      "channel",
	}
}

// clearDefaultChannel unsets the current default so the hub never has two.
// exceptID uuid.Nil means no channel is spared.
func clearDefaultChannel(tx *gorm.DB, hubID, exceptID uuid.UUID) error {
	q := tx.Model(&model.ChannelModel{}).
		Where("channel_hub_id = ? AND channel_is_default = TRUE", hubID)
	if exceptID != uuid.Nil {
		q = q.Where("channel_id <> ?", exceptID)
	}
	return q.Update("channel_is_default", false).Error
}

// =============================
// Admin endpoints (hub from token)
// =============================

// CreateChannel
// POST /api/a/channels
func (ctrl *ChannelController) CreateChannel(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModelChannel(hubID, userID)

	slugBase := req.ChannelSlug
	if strings.TrimSpace(slugBase) == "" {
		slugBase = req.ChannelName
	}
	slug, err := helper.GenerateUniqueSlug(ctrl.DB, channelSlugOptions(hubID), slugBase)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate channel slug")
	}
	m.ChannelSlug = slug

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if m.ChannelIsDefault {
			if err := clearDefaultChannel(tx, hubID, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	}); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Channel slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create channel")
	}

	return helper.JsonCreated(c, "Channel created", fiber.Map{
		"item": dto.FromModelChannel(m),
	})
}

// UpdateChannel
// PATCH /api/a/channels/:id
func (ctrl *ChannelController) UpdateChannel(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	channelID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid channel id")
	}

	var m model.ChannelModel
	if err := ctrl.DB.
		Where("channel_id = ? AND channel_hub_id = ?", channelID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Channel not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load channel")
	}

	var req dto.ChannelUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changed := dto.ApplyChannelUpdate(&m, &req)

	if req.ChannelSlug != nil {
		if want := helper.NormalizeSlug(*req.ChannelSlug); want != "" && want != m.ChannelSlug {
			slug, err := helper.GenerateUniqueSlug(ctrl.DB, channelSlugOptions(hubID), want)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate channel slug")
			}
			m.ChannelSlug = slug
			changed = true
		}
	}

	makeDefault := req.ChannelIsDefault != nil && *req.ChannelIsDefault && !m.ChannelIsDefault
	if req.ChannelIsDefault != nil && m.ChannelIsDefault != *req.ChannelIsDefault {
		m.ChannelIsDefault = *req.ChannelIsDefault
		changed = true
	}

	if !changed {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelChannel(&m),
		})
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if makeDefault {
			if err := clearDefaultChannel(tx, hubID, m.ChannelID); err != nil {
				return err
			}
		}
		return tx.Save(&m).Error
	}); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Channel slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update channel")
	}

	return helper.JsonUpdated(c, "Channel updated", fiber.Map{
		"item": dto.FromModelChannel(&m),
	})
}

// DeleteChannel
// DELETE /api/a/channels/:id?hard=true
// The channel's messages go with it, in one transaction.
func (ctrl *ChannelController) DeleteChannel(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	channelID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid channel id")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard {
		role := helperAuth.RoleInHub(c, hubID)
		if role != constants.RoleOwner && role != constants.RoleDirector && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
		}
	}

	var deletedMessages int64
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		msgQ := tx.Where("message_channel_id = ? AND message_hub_id = ?", channelID, hubID)
		chQ := tx.Where("channel_id = ? AND channel_hub_id = ?", channelID, hubID)
		if hard {
			msgQ = msgQ.Unscoped()
			chQ = chQ.Unscoped()
		}

		msgRes := msgQ.Delete(&messageModel.MessageModel{})
		if msgRes.Error != nil {
			return msgRes.Error
		}
		deletedMessages = msgRes.RowsAffected

		chRes := chQ.Delete(&model.ChannelModel{})
		if chRes.Error != nil {
			return chRes.Error
		}
		if chRes.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Channel not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete channel")
	}

	log.Printf("[CLEANUP] channel %s removed with %d messages (hard=%v)\n", channelID, deletedMessages, hard)

	return helper.JsonDeleted(c, "Channel deleted", fiber.Map{
		"channel_id":       channelID,
		"deleted_messages": deletedMessages,
		"hard":             hard,
	})
}

// =============================
// Member endpoints
// =============================

// ListChannels
// GET /api/u/channels
// Channels are shared rooms; the feature gate decides visibility, not
// row ownership.
func (ctrl *ChannelController) ListChannels(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.ChannelModel
	if err := ctrl.DB.
		Where("channel_hub_id = ?", hubID).
		Order("channel_is_default DESC, channel_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list channels")
	}

	items := make([]dto.ChannelResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelChannel(&rows[i]))
	}

	return helper.JsonOK(c, "Channels fetched", fiber.Map{
		"items": items,
		"total": len(items),
	})
}
