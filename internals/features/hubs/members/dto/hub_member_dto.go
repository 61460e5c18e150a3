// file: internals/features/hubs/members/dto/hub_member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// Add/invite: either the user id or the email must be present.
// The hub always comes from the caller's token, never from the body.
type HubMemberAddRequest struct {
	HubMemberUserID uuid.UUID `json:"hub_member_user_id"`
	UserEmail       string    `json:"user_email"`
	HubMemberRole   string    `json:"hub_member_role"`
}

type HubMemberChangeRoleRequest struct {
	HubMemberRole string `json:"hub_member_role"`
}

type HubMemberLeaveRequest struct {
	HubID uuid.UUID `json:"hub_id"`
}

/* =========================================================
   RESPONSE DTO — membership row + user summary
========================================================= */

type HubMemberResponse struct {
	HubMemberID     string `json:"hub_member_id"`
	HubMemberHubID  string `json:"hub_member_hub_id"`
	HubMemberUserID string `json:"hub_member_user_id"`

	HubMemberRole     string `json:"hub_member_role"`
	HubMemberIsActive bool   `json:"hub_member_is_active"`

	UserName string `json:"user_name,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`

	HubMemberCreatedAt time.Time `json:"hub_member_created_at"`
	HubMemberUpdatedAt time.Time `json:"hub_member_updated_at"`
}

func ToHubMemberResponse(m *model.HubMemberModel) HubMemberResponse {
	return HubMemberResponse{
		HubMemberID:     m.HubMemberID.String(),
		HubMemberHubID:  m.HubMemberHubID.String(),
		HubMemberUserID: m.HubMemberUserID.String(),

		HubMemberRole:     m.HubMemberRole,
		HubMemberIsActive: m.HubMemberIsActive,

		HubMemberCreatedAt: m.HubMemberCreatedAt,
		HubMemberUpdatedAt: m.HubMemberUpdatedAt,
	}
}
