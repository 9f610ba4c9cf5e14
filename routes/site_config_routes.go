package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/config/db"
	"github.com/carkumbh/backend/controllers/site_config_controller"
	"github.com/carkumbh/backend/middlewares/auth"
)

func RegisterSiteConfigRoutes(router *gin.Engine, cld clients.CloudinaryClientWrapper) {
	configController := site_config_controller.NewSiteConfigController(db.DB, cld)

	config := router.Group("/config")
	{
		config.GET("/banner", configController.GetBanner)
		config.POST("/banner", auth.Protect(), configController.UpdateBanner)

		config.GET("/workshop-banner", configController.GetWorkshopBanner)
		config.POST("/workshop-banner", auth.Protect(), configController.UpdateWorkshopBanner)

		config.GET("/workshop-content", configController.GetWorkshopContent)
		config.POST("/workshop-content", auth.Protect(), configController.UpdateWorkshopContent)
	}

	// The catalog read is public; clients render packages from it.
	router.GET("/event-packages", configController.GetEventPackages)
	router.POST("/event-packages", auth.Protect(), configController.UpdateEventPackages)
}
