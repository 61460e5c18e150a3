// internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/configs"
	authModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/model"
	authRepo "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/repository"
	helpers "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	// CSRF required for cookie-based endpoints
	if err := enforceCSRF(c); err != nil {
		return helpers.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No refresh token")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Parse & validate the refresh JWT
	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// The hash must still be live in the DB
	h := computeRefreshHash(refreshCookie, refreshSecret)
	if _, err := authRepo.FindRefreshTokenByHashActive(db, h); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token not recognized")
	}

	// User + memberships
	userFull, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "User not found")
	}
	if !userFull.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account deactivated")
	}
	memberships, err := loadHubMemberships(c.Context(), db, userFull.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load hub memberships")
	}

	// ROTATE: remove the old token
	if err := authRepo.DeleteRefreshTokenByHash(db, h); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	// Issue a fresh access & refresh pair
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	now := nowUTC()

	hubIDs, adminIDs, staffIDs := splitHubIDs(memberships)
	activeHubID := activeHubIDIfSingle(memberships)

	accessClaims := buildAccessClaims(*userFull, memberships, hubIDs, adminIDs, staffIDs, activeHubID, now)
	refreshClaims := buildRefreshClaims(userFull.ID, now)

	newAccess, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create new access token")
	}
	newRefresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create new refresh token")
	}

	// Store the new refresh hash
	if err := createRefreshTokenFast(db, &authModel.RefreshTokenModel{
		UserID:    userFull.ID,
		Token:     computeRefreshHash(newRefresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store new refresh token")
	}

	// New refresh + CSRF cookies
	setAuthCookiesOnlyRefreshAndCSRF(c, newRefresh, now)

	return helpers.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": newAccess,
	})
}

// ========================== CSRF ==========================

// CSRF seeds the csrf_token cookie for the double-submit strategy.
// GET /api/auth/csrf
func CSRF(db *gorm.DB, c *fiber.Ctx) error {
	origin := getRequestOrigin(c)
	// empty origin still passes; the CORS layer constrains browsers anyway
	if origin != "" && !isAllowedOrigin(origin) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Origin not allowed")
	}

	token := randomString(48)
	setCSRFCookie(c, token, nowUTC().Add(24*time.Hour))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{"csrf_token": token},
	})
}

// enforceCSRF applies the double-submit check whenever the caller relies
// on cookies instead of a Bearer header.
func enforceCSRF(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	return helpers.CheckCSRFCookieHeader(c)
}

func setCSRFCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "csrf_token",
		Value:    token,
		HTTPOnly: false,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  expires,
	})
}

func setAuthCookiesOnlyRefreshAndCSRF(c *fiber.Ctx, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
	setCSRFCookie(c, randomString(48), now.Add(24*time.Hour))
}

func getRequestOrigin(c *fiber.Ctx) string {
	if o := strings.TrimSpace(c.Get("Origin")); o != "" {
		return o
	}
	ref := strings.TrimSpace(c.Get("Referer"))
	if ref == "" {
		return ""
	}
	// scheme://host portion only
	parts := strings.SplitN(ref, "/", 4)
	if len(parts) >= 3 {
		return parts[0] + "//" + parts[2]
	}
	return ""
}

func isAllowedOrigin(origin string) bool {
	allowed := []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://127.0.0.1:5500",
		"https://teamhub-production.up.railway.app",
		"https://teamhub-web.vercel.app",
	}
	if extra := configs.GetEnv("CORS_EXTRA_ORIGINS", ""); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed = append(allowed, o)
			}
		}
	}
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
