package cors

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsMiddleware allows the configured frontend origins plus local dev
// hosts. Requests with no Origin header (curl, mobile apps) pass through.
func CorsMiddleware() gin.HandlerFunc {
	allowed := []string{
		"http://localhost:8080",
		"http://localhost:5173",
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		allowed = append(allowed, strings.Split(frontend, ",")...)
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
