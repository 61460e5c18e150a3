// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/configs"
)

// CorsMiddleware builds the CORS policy for the web clients
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://127.0.0.1:5500",
		"https://teamhub-production.up.railway.app",
		"https://teamhub-web.vercel.app",
	}
	if extra := configs.GetEnv("CORS_EXTRA_ORIGINS", ""); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CSRF-Token, X-Active-Hub-ID, X-Active-Hub-Slug",
		AllowCredentials: true,
	})
}
