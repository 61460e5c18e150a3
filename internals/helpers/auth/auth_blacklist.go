package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
   =========================================================
   LOW-LEVEL UTILS
   =========================================================
*/

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil)) // fits a TEXT column
}

// token from Authorization: Bearer ... or the access_token cookie
func getRawAccessToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

/*
   =========================================================
   CORE API (table: token TEXT, expired_at, deleted_at)
   =========================================================
*/

// Add stores HMAC(access_token) (hex) in the token TEXT column.
func Add(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	tokenHex := hmacHex(rawAccessToken, jwtSecret)
	// ON CONFLICT matches unique(token) in the schema
	return db.WithContext(ctx).Exec(`
		INSERT INTO token_blacklist (token, expired_at)
		VALUES (?, ?)
		ON CONFLICT (token) DO UPDATE
		SET expired_at = EXCLUDED.expired_at,
		    deleted_at = NULL
	`, tokenHex, expiresAt).Error
}

// IsBlacklisted: is there an active, unexpired row?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	tokenHex := hmacHex(rawAccessToken, jwtSecret)
	var exists bool
	err := db.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1
		  FROM token_blacklist
		  WHERE token = ?
		    AND deleted_at IS NULL
		    AND expired_at > NOW()
		)
	`, tokenHex).Scan(&exists).Error
	return exists, err
}

// PurgeExpired deletes rows that are already past their expiry.
func PurgeExpired(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at <= NOW()`).Error
}

/*
   =========================================================
   MIDDLEWARE
   =========================================================
*/

// Mount this IN FRONT of the JWT middleware.
func MiddlewareBlacklistOnly(db *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := getRawAccessToken(c)
		if strings.TrimSpace(raw) == "" {
			return c.Next()
		}
		bl, err := IsBlacklisted(c.Context(), db, raw, jwtSecret)
		if err == nil && bl {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Session has been signed out. Please log in again.",
			})
		}
		return c.Next()
	}
}
