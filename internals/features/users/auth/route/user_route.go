// file: internals/features/users/auth/route/user_route.go
package route

import (
	controller "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/controller"
	rateLimiter "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares"
	authMiddleware "github.com/rpasek2/V2-Teamhub-sub001/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	// CSRF & refresh live here (cookie path)
	baseAuth.Get("/csrf", authController.CSRF)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/forgot-password/check", authController.CheckSecurityAnswer)
	baseAuth.Post("/forgot-password/reset", rateLimiter.ForgotPasswordRateLimiter(), authController.ResetPassword)

	// 🔒 Protected (valid access token required)
	protectedAuth := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))

	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Put("/update-user-name", authController.UpdateUserName)
	protectedAuth.Get("/me", authController.Me)
	protectedAuth.Get("/me/context", authController.GetMyContext)
	protectedAuth.Get("/me/hubs", authController.GetMyHubs)
	protectedAuth.Get("/me/onboarding", authController.GetMyOnboarding)
}
