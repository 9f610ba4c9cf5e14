package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/config/db"
	"github.com/carkumbh/backend/controllers/auth_controller"
	"github.com/carkumbh/backend/middlewares"
	"github.com/carkumbh/backend/middlewares/auth"
)

func RegisterAuthRoutes(router *gin.Engine) {
	authController := auth_controller.NewAuthController(db.DB)

	group := router.Group("/auth")
	{
		group.POST("/login", middlewares.NewRateLimiter("10-5m", "adminLogin"), authController.Login)
		group.POST("/setup", authController.Setup)
		group.GET("/profile", auth.Protect(), authController.Profile)
	}
}
