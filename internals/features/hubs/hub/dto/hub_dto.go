// file: internals/features/hubs/hub/dto/hub_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
)

/* =========================================================
   REQUEST DTO — CREATE (writable fields only)
   Notes:
   - hub_slug: optional, generated from hub_name when empty
   - hub_permissions is NOT part of create; it has its own endpoint
========================================================= */

type HubRequest struct {
	HubName        string `json:"hub_name" validate:"required,min=3,max=100"`
	HubSlug        string `json:"hub_slug" validate:"omitempty,max=100"`
	HubSport       string `json:"hub_sport" validate:"omitempty,max=50"`
	HubDescription string `json:"hub_description"`
	HubLocation    string `json:"hub_location"`

	HubWebsiteURL   string `json:"hub_website_url" validate:"omitempty,url"`
	HubInstagramURL string `json:"hub_instagram_url" validate:"omitempty,url"`
	HubFacebookURL  string `json:"hub_facebook_url" validate:"omitempty,url"`

	HubTimezone string `json:"hub_timezone" validate:"omitempty,max=64"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type HubResponse struct {
	HubID string `json:"hub_id"`

	HubName        string `json:"hub_name"`
	HubSlug        string `json:"hub_slug"`
	HubSport       string `json:"hub_sport"`
	HubDescription string `json:"hub_description"`
	HubLocation    string `json:"hub_location"`

	HubLogoURL string `json:"hub_logo_url"`

	HubWebsiteURL   string `json:"hub_website_url"`
	HubInstagramURL string `json:"hub_instagram_url"`
	HubFacebookURL  string `json:"hub_facebook_url"`

	HubTimezone string `json:"hub_timezone"`

	// verification is read-only from the server
	HubIsActive   bool `json:"hub_is_active"`
	HubIsVerified bool `json:"hub_is_verified"`

	HubCreatedAt time.Time `json:"hub_created_at"`
	HubUpdatedAt time.Time `json:"hub_updated_at"`
}

/* =========================================================
   PARTIAL UPDATE DTO — pointers on all writable fields
   nil = unchanged, pointer to "" = clear
========================================================= */

type HubUpdateRequest struct {
	HubName        *string `json:"hub_name"`
	HubSlug        *string `json:"hub_slug"`
	HubSport       *string `json:"hub_sport"`
	HubDescription *string `json:"hub_description"`
	HubLocation    *string `json:"hub_location"`

	HubWebsiteURL   *string `json:"hub_website_url"`
	HubInstagramURL *string `json:"hub_instagram_url"`
	HubFacebookURL  *string `json:"hub_facebook_url"`

	HubTimezone *string `json:"hub_timezone"`
	HubIsActive *bool   `json:"hub_is_active"`
}

/* =========================================================
   MODEL <-> DTO conversion
========================================================= */

func FromModelHub(m *model.HubModel) HubResponse {
	return HubResponse{
		HubID: m.HubID.String(),

		HubName:        m.HubName,
		HubSlug:        m.HubSlug,
		HubSport:       m.HubSport,
		HubDescription: valOrEmpty(m.HubDescription),
		HubLocation:    valOrEmpty(m.HubLocation),

		HubLogoURL: valOrEmpty(m.HubLogoURL),

		HubWebsiteURL:   valOrEmpty(m.HubWebsiteURL),
		HubInstagramURL: valOrEmpty(m.HubInstagramURL),
		HubFacebookURL:  valOrEmpty(m.HubFacebookURL),

		HubTimezone:   m.HubTimezone,
		HubIsActive:   m.HubIsActive,
		HubIsVerified: m.HubIsVerified,

		HubCreatedAt: m.HubCreatedAt,
		HubUpdatedAt: m.HubUpdatedAt,
	}
}

// ToModelHub builds a model instance from the request (for INSERT)
func ToModelHub(in *HubRequest) *model.HubModel {
	m := &model.HubModel{
		HubName:     strings.TrimSpace(in.HubName),
		HubSlug:     strings.TrimSpace(in.HubSlug),
		HubSport:    strings.ToLower(strings.TrimSpace(in.HubSport)),
		HubTimezone: strings.TrimSpace(in.HubTimezone),
		HubIsActive: true,
	}
	if m.HubSport == "" {
		m.HubSport = "gymnastics"
	}
	if m.HubTimezone == "" {
		m.HubTimezone = "America/New_York"
	}
	m.HubDescription = optStr(in.HubDescription)
	m.HubLocation = optStr(in.HubLocation)
	m.HubWebsiteURL = optStr(in.HubWebsiteURL)
	m.HubInstagramURL = optStr(in.HubInstagramURL)
	m.HubFacebookURL = optStr(in.HubFacebookURL)
	return m
}

// ApplyHubUpdate applies a partial update onto an existing model
func ApplyHubUpdate(m *model.HubModel, u *HubUpdateRequest) {
	if u.HubName != nil {
		m.HubName = strings.TrimSpace(*u.HubName)
	}
	if u.HubSlug != nil {
		m.HubSlug = strings.TrimSpace(*u.HubSlug)
	}
	if u.HubSport != nil {
		m.HubSport = strings.ToLower(strings.TrimSpace(*u.HubSport))
	}
	if u.HubDescription != nil {
		m.HubDescription = optStr(*u.HubDescription)
	}
	if u.HubLocation != nil {
		m.HubLocation = optStr(*u.HubLocation)
	}
	if u.HubWebsiteURL != nil {
		m.HubWebsiteURL = optStr(*u.HubWebsiteURL)
	}
	if u.HubInstagramURL != nil {
		m.HubInstagramURL = optStr(*u.HubInstagramURL)
	}
	if u.HubFacebookURL != nil {
		m.HubFacebookURL = optStr(*u.HubFacebookURL)
	}
	if u.HubTimezone != nil && strings.TrimSpace(*u.HubTimezone) != "" {
		m.HubTimezone = strings.TrimSpace(*u.HubTimezone)
	}
	if u.HubIsActive != nil {
		m.HubIsActive = *u.HubIsActive
	}
}

/* ===================== small utils ===================== */

func valOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optStr: "" => NULL
func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
