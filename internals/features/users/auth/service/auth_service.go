package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/configs"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	authHelper "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/helper"
	authModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/model"
	authRepo "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/repository"
	userModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/user/model"
	helpers "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
	helperAuth "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers/auth"
)

/* ==========================
   Const & Types
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour

	// timeouts for hot-path queries
	qryTimeoutShort = 800 * time.Millisecond
)

/* ==========================
   Meta schema cache (prewarm)
========================== */

type authMeta struct {
	once sync.Once

	HasHubMembers bool
	HasHubs       bool

	Ready bool
}

var meta authMeta

// Call once at app start, after the DB is up: service.PrewarmAuthMeta(db)
func PrewarmAuthMeta(db *gorm.DB) {
	meta.once.Do(func() {
		meta.HasHubMembers = quickHasTable(db, "hub_members")
		meta.HasHubs = quickHasTable(db, "hubs")
		meta.Ready = true
	})
}

func quickHasTable(db *gorm.DB, table string) bool {
	if db == nil || table == "" {
		return false
	}
	var exists bool
	_ = db.Raw(`SELECT to_regclass((SELECT current_schema()) || '.' || ?) IS NOT NULL`, table).Scan(&exists).Error
	return exists
}

/* ==========================
   Small Helpers
========================== */

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func randomString(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// extremely unlikely; fall back to a time-derived value
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf)[:n]
}

/* ==========================
   Hub membership claims
========================== */

// loadHubMemberships pulls the caller's active hub roles for the token claims.
func loadHubMemberships(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]helperAuth.HubRolesEntry, error) {
	if !meta.Ready {
		PrewarmAuthMeta(db)
	}
	if !meta.HasHubMembers {
		return nil, nil
	}

	ctxQ, cancel := context.WithTimeout(ctx, qryTimeoutShort)
	defer cancel()

	var rows []struct {
		HubID uuid.UUID `gorm:"column:hub_member_hub_id"`
		Role  string    `gorm:"column:hub_member_role"`
	}
	if err := db.WithContext(ctxQ).Raw(`
		SELECT hub_member_hub_id, hub_member_role
		FROM hub_members
		WHERE hub_member_user_id = ?
		  AND hub_member_is_active = TRUE
		  AND hub_member_deleted_at IS NULL
		ORDER BY hub_member_created_at ASC
	`, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]helperAuth.HubRolesEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, helperAuth.HubRolesEntry{HubID: r.HubID, Role: strings.ToLower(r.Role)})
	}
	return out, nil
}

func splitHubIDs(memberships []helperAuth.HubRolesEntry) (union, admin, staff []string) {
	seen := map[string]struct{}{}
	for _, m := range memberships {
		id := m.HubID.String()
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			union = append(union, id)
		}
		switch m.Role {
		case constants.RoleOwner, constants.RoleDirector, constants.RoleAdmin:
			admin = append(admin, id)
			staff = append(staff, id)
		case constants.RoleCoach:
			staff = append(staff, id)
		}
	}
	return union, admin, staff
}

// activeHubIDIfSingle picks the active hub automatically when the user
// belongs to exactly one.
func activeHubIDIfSingle(memberships []helperAuth.HubRolesEntry) *string {
	set := map[uuid.UUID]struct{}{}
	for _, m := range memberships {
		set[m.HubID] = struct{}{}
	}
	if len(set) != 1 {
		return nil
	}
	for id := range set {
		s := id.String()
		return &s
	}
	return nil
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input userModel.UserModel
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := authHelper.ValidateRegisterInput(input.UserName, input.Email, input.Password, input.SecurityAnswer); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := input.Validate(); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Hash password
	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	input.Password = passwordHash

	// Create user
	if err := authRepo.CreateUser(db, &input); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email or username already registered")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registration successful", nil)
}

/* ==========================
   LOGIN (username/email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)

	if err := authHelper.ValidateLoginInput(input.Identifier, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Minimal user
	userLight, err := authRepo.FindUserByEmailOrUsernameLight(db, input.Identifier)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Incorrect identifier or password")
	}
	if !userLight.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}
	if err := authHelper.CheckPasswordHash(userLight.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Incorrect identifier or password")
	}

	// Full user
	userFull, err := authRepo.FindUserByID(db, userLight.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user data")
	}

	// Hub memberships for the claims
	memberships, err := loadHubMemberships(c.Context(), db, userFull.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load hub memberships")
	}

	return issueTokensWithHubs(c, db, *userFull, memberships)
}

/* ==========================
   JWT claims & response builders
========================== */

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func buildAccessClaims(
	user userModel.UserModel,
	memberships []helperAuth.HubRolesEntry,
	hubIDs, adminIDs, staffIDs []string,
	activeHubID *string,
	now time.Time,
) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"full_name": user.FullName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	if len(memberships) > 0 {
		claims["hub_roles"] = memberships
	}
	if len(hubIDs) > 0 {
		claims["hub_ids"] = hubIDs
	}
	if len(adminIDs) > 0 {
		claims["hub_admin_ids"] = adminIDs
	}
	if len(staffIDs) > 0 {
		claims["hub_staff_ids"] = staffIDs
	}
	if activeHubID != nil {
		claims["active_hub_id"] = *activeHubID
	}
	return claims
}

func buildLoginResponseUser(
	user userModel.UserModel,
	memberships []helperAuth.HubRolesEntry,
	hubIDs, adminIDs, staffIDs []string,
	activeHubID *string,
) fiber.Map {
	resp := fiber.Map{
		"id":            user.ID,
		"user_name":     user.UserName,
		"email":         user.Email,
		"full_name":     user.FullName,
		"role":          user.Role,
		"hub_roles":     memberships,
		"hub_ids":       hubIDs,
		"hub_admin_ids": adminIDs,
		"hub_staff_ids": staffIDs,
	}
	if activeHubID != nil {
		resp["active_hub_id"] = *activeHubID
	}
	return resp
}

/* ==========================
   ISSUE TOKENS
========================== */

func issueTokensWithHubs(
	c *fiber.Ctx,
	db *gorm.DB,
	user userModel.UserModel,
	memberships []helperAuth.HubRolesEntry,
) error {
	// secrets
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()

	if !meta.Ready {
		PrewarmAuthMeta(db)
	}

	// Derivatives from the memberships
	hubIDs, adminIDs, staffIDs := splitHubIDs(memberships)
	activeHubID := activeHubIDIfSingle(memberships)

	// Access & Refresh claims
	accessClaims := buildAccessClaims(user, memberships, hubIDs, adminIDs, staffIDs, activeHubID, now)
	refreshClaims := buildRefreshClaims(user.ID, now)

	// Sign tokens
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	// Store the refresh token, hashed
	tokenHash := computeRefreshHash(refreshToken, refreshSecret)
	ua, ip := c.Get("User-Agent"), c.IP()
	if err := createRefreshTokenFast(db, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     tokenHash,
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	// Cookies
	setAuthCookies(c, accessToken, refreshToken, now)

	// Response
	respUser := buildLoginResponseUser(user, memberships, hubIDs, adminIDs, staffIDs, activeHubID)
	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"user":         respUser,
		"access_token": accessToken,
	})
}

// Insert refresh_token with lower latency.
// Safe for tokens (a crash right after commit can at worst lose one row).
func createRefreshTokenFast(db *gorm.DB, rt *authModel.RefreshTokenModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL synchronous_commit = OFF`).Error; err != nil {
			log.Printf("[WARN] set synchronous_commit=OFF failed: %v", err)
		}
		return authRepo.CreateRefreshToken(tx, rt)
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Verify the Google token
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	// Decode the claim set
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	// Find by google_id
	user, err := authRepo.FindUserByGoogleID(db, googleID)
	if err != nil {
		// No user yet, create one
		newUser := userModel.UserModel{
			UserName:         name,
			FullName:         name,
			Email:            email,
			Password:         generateDummyPassword(),
			GoogleID:         &googleID,
			SecurityQuestion: "Created by Google",
			SecurityAnswer:   "google_auth",
			CreatedAt:        nowUTC(),
			UpdatedAt:        nowUTC(),
			IsActive:         true,
		}
		if err := authRepo.CreateUser(db, &newUser); err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
		}
		user = &newUser
	}

	// Full user + active guard
	userFull, err := authRepo.FindUserByID(db, user.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user data")
	}
	if !userFull.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	memberships, err := loadHubMemberships(c.Context(), db, userFull.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load hub memberships")
	}

	return issueTokensWithHubs(c, db, *userFull, memberships)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	// CSRF required when authenticating via cookie (no Bearer header)
	cookieAT := strings.TrimSpace(c.Cookies("access_token"))
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	usesCookieAuth := cookieAT != "" && !strings.HasPrefix(authHeader, "Bearer ")

	if usesCookieAuth {
		if err := helpers.CheckCSRFCookieHeader(c); err != nil {
			return helpers.JsonError(c, fiber.StatusForbidden, err.Error())
		}
	}

	// Raw access token (cookie/Authorization)
	accessToken := helpers.GetRawAccessToken(c)

	// Blacklist TTL
	ttl := resolveBlacklistTTL(accessToken)

	// Blacklist access token (idempotent)
	if accessToken != "" {
		if err := helperAuth.Add(c.Context(), db, accessToken, configs.JWTSecret, nowUTC().Add(ttl)); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout without access token; clearing cookies anyway (idempotent)")
	}

	// Drop the refresh token row if the cookie is present
	if rt := helpers.GetRefreshTokenFromCookie(c); rt != "" {
		if refreshSecret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(rt, refreshSecret))
		}
	}

	// Clear cookies
	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token", "csrf_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: name != "csrf_token",
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helpers.JsonOK(c, "Logout successful", nil)
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				until := time.Until(time.Unix(int64(exp), 0))
				if until > 0 {
					return until + 60*time.Second
				}
				return time.Minute
			}
		}
	}
	return ttl
}

/* ==========================
   UTIL
========================== */

func generateDummyPassword() string {
	hash, _ := authHelper.HashPassword(randomString(24) + "!Aa1")
	return hash
}

func CheckSecurityAnswer(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email  string `json:"email"`
		Answer string `json:"security_answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := authHelper.ValidateSecurityAnswerInput(input.Email, input.Answer); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	if !strings.EqualFold(strings.TrimSpace(input.Answer), strings.TrimSpace(user.SecurityAnswer)) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Incorrect security answer")
	}

	return helpers.JsonOK(c, "Security answer correct", fiber.Map{
		"email": user.Email,
	})
}
