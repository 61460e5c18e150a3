// file: internals/features/messaging/messages/controller/message_controller.go
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
	channelModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/model"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/dto"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/messages/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

type MessageController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db, Validate: validator.New()}
}

// messageRow carries the sender's display name alongside the message.
type messageRow struct {
	model.MessageModel
	SenderName string `json:"sender_name"`
}

func (ctrl *MessageController) channelInHub(channelID, hubID uuid.UUID) error {
	var ch channelModel.ChannelModel
	err := ctrl.DB.
		Select("channel_id").
		Where("channel_id = ? AND channel_hub_id = ?", channelID, hubID).
		Take(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Channel not found")
	}
	return err
}

// PostMessage
// POST /api/u/channels/:channel_id/messages
// Accepts JSON, or multipart with an optional "attachment" file that is
// stored first.
func (ctrl *MessageController) PostMessage(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	channelID, err := helper.ParseUUIDParam(c, "channel_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid channel id")
	}
	if err := ctrl.channelInHub(channelID, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.MessageRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.MessageBody = c.FormValue("message_body")
		req.MessageAttachmentURL = c.FormValue("message_attachment_url")
		if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
			url, err := helper.UploadFileToSupabase("channels/"+channelID.String(), fh)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadGateway, "Failed to store attachment")
			}
			req.MessageAttachmentURL = url
		}
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModelMessage(hubID, channelID, userID)
	if err := ctrl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to post message")
	}

	return helper.JsonCreated(c, "Message posted", fiber.Map{
		"item": dto.FromModelMessage(m),
	})
}

// ListMessages
// GET /api/u/channels/:channel_id/messages?before=&pinned=&per_page=
// Newest first. The cursor is the created_at of the oldest message the
// client already has.
func (ctrl *MessageController) ListMessages(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	channelID, err := helper.ParseUUIDParam(c, "channel_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid channel id")
	}
	if err := ctrl.channelInHub(channelID, hubID); err != nil {
		return helper.FromFiberError(c, err)
	}

	perPage := c.QueryInt("per_page", 30)
	if perPage < 1 {
		perPage = 30
	}
	if perPage > 100 {
		perPage = 100
	}

	q := ctrl.DB.
		Table("messages").
		Select("messages.*, u.user_name AS sender_name").
		Joins("LEFT JOIN users u ON u.id = messages.message_sender_user_id").
		Where("message_channel_id = ? AND message_hub_id = ?", channelID, hubID).
		Where("message_deleted_at IS NULL")

	if strings.EqualFold(c.Query("pinned"), "true") {
		q = q.Where("message_is_pinned = TRUE")
	}
	if before := strings.TrimSpace(c.Query("before")); before != "" {
		t, err := time.Parse(time.RFC3339Nano, before)
		if err != nil {
			t, err = time.Parse(time.RFC3339, before)
		}
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid before cursor")
		}
		q = q.Where("message_created_at < ?", t)
	}

	// One extra row tells us whether another page exists.
	var rows []messageRow
	if err := q.
		Order("message_created_at DESC").
		Limit(perPage + 1).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list messages")
	}

	hasMore := len(rows) > perPage
	if hasMore {
		rows = rows[:perPage]
	}

	items := make([]dto.MessageResponse, 0, len(rows))
	for i := range rows {
		item := dto.FromModelMessage(&rows[i].MessageModel)
		item.SenderName = rows[i].SenderName
		items = append(items, item)
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].MessageCreatedAt.Format(time.RFC3339Nano)
	}

	return helper.JsonOK(c, "Messages fetched", fiber.Map{
		"items":       items,
		"has_more":    hasMore,
		"next_cursor": nextCursor,
	})
}

// EditMessage
// PATCH /api/u/messages/:id
// Only the sender may edit their message.
func (ctrl *MessageController) EditMessage(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	messageID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid message id")
	}

	var m model.MessageModel
	if err := ctrl.DB.
		Where("message_id = ? AND message_hub_id = ?", messageID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load message")
	}
	if m.MessageSenderUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only edit your own messages")
	}

	var req dto.MessageUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.MessageBody == nil || strings.TrimSpace(*req.MessageBody) == m.MessageBody {
		return helper.JsonOK(c, "No changes", fiber.Map{
			"item": dto.FromModelMessage(&m),
		})
	}

	m.MessageBody = strings.TrimSpace(*req.MessageBody)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update message")
	}

	return helper.JsonUpdated(c, "Message updated", fiber.Map{
		"item": dto.FromModelMessage(&m),
	})
}

// SetPinned builds the pin / unpin handler. Staff only.
// PUT    /api/u/messages/:id/pin
// DELETE /api/u/messages/:id/pin
func (ctrl *MessageController) SetPinned(pinned bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hubID, err := helperAuth.GetActiveHubID(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		role := helperAuth.RoleInHub(c, hubID)
		if !constants.RoleIn(role, constants.StaffRoles) && !helperAuth.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("message pinning"))
		}
		messageID, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid message id")
		}

		res := ctrl.DB.Model(&model.MessageModel{}).
			Where("message_id = ? AND message_hub_id = ?", messageID, hubID).
			Update("message_is_pinned", pinned)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update message")
		}
		if res.RowsAffected == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
		}

		msg := "Message pinned"
		if !pinned {
			msg = "Message unpinned"
		}
		return helper.JsonUpdated(c, msg, fiber.Map{
			"message_id":        messageID,
			"message_is_pinned": pinned,
		})
	}
}

// DeleteMessage
// DELETE /api/u/messages/:id?hard=true
// Senders may remove their own messages, staff may remove any.
func (ctrl *MessageController) DeleteMessage(c *fiber.Ctx) error {
	hubID, err := helperAuth.GetActiveHubID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	messageID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid message id")
	}

	var m model.MessageModel
	if err := ctrl.DB.
		Where("message_id = ? AND message_hub_id = ?", messageID, hubID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load message")
	}

	role := helperAuth.RoleInHub(c, hubID)
	staff := constants.RoleIn(role, constants.StaffRoles) || helperAuth.IsOwner(c)
	if m.MessageSenderUserID != userID && !staff {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only delete your own messages")
	}

	hard := strings.EqualFold(c.Query("hard"), "true")
	if hard && !constants.RoleIn(role, constants.LeadershipRoles) && !helperAuth.IsOwner(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorLeadership("permanent deletion"))
	}

	q := ctrl.DB.Where("message_id = ?", messageID)
	if hard {
		q = q.Unscoped()
	}
	if err := q.Delete(&model.MessageModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete message")
	}

	return helper.JsonDeleted(c, "Message deleted", fiber.Map{
		"message_id": messageID,
		"hard":       hard,
	})
}
