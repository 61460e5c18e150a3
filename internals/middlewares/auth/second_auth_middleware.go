package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/configs"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"

	"gorm.io/gorm"
)

// SecondAuthMiddleware fills the user context when a valid token is present
// but never rejects the request. Used on routes that also serve anonymous
// visitors, like public event pages.
func SecondAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🔥 SecondAuthMiddleware triggered at:", c.Path())

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			cookieToken := c.Cookies("access_token")
			if cookieToken != "" {
				authHeader = "Bearer " + cookieToken
			}
		}

		// no token, continue without user context
		if authHeader == "" {
			log.Println("[INFO] No token, continuing as anonymous")
			return c.Next()
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Println("[WARNING] Invalid token format, continuing as anonymous")
			return c.Next()
		}

		tokenString := tokenParts[1]

		if blacklisted, err := helperAuth.IsBlacklisted(c.Context(), db, tokenString, configs.JWTSecret); err == nil && blacklisted {
			log.Println("[WARNING] Token is blacklisted, continuing as anonymous")
			return c.Next()
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty, continuing as anonymous")
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}

		_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil {
			log.Println("[ERROR] Failed to parse token, continuing as anonymous:", err)
			return c.Next()
		}

		if exp, ok := claims["exp"].(float64); ok {
			expTime := time.Unix(int64(exp), 0)
			if time.Now().After(expTime.Add(30 * time.Second)) {
				log.Println("[WARNING] Token expired, continuing as anonymous")
				return c.Next()
			}
		}

		idStr, ok := claims["id"].(string)
		if !ok {
			log.Println("[WARNING] Token has no ID, continuing as anonymous")
			return c.Next()
		}
		userID, err := uuid.Parse(idStr)
		if err != nil {
			log.Println("[WARNING] Token ID is not a UUID, continuing as anonymous")
			return c.Next()
		}

		var user struct {
			IsActive bool
		}
		if err := db.Table("users").Select("is_active").Where("id = ?", userID).First(&user).Error; err != nil || !user.IsActive {
			log.Println("[WARNING] User missing or inactive, continuing as anonymous")
			return c.Next()
		}

		c.Locals("user_id", userID.String())
		storeBasicClaimsToLocals(c, claims)
		storeHubClaimsToLocals(c, claims)

		log.Println("[SUCCESS] Token valid, continuing as user:", userID)
		return c.Next()
	}
}
