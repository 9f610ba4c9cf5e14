package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/config/db"
	"github.com/carkumbh/backend/controllers/booking_controller"
	"github.com/carkumbh/backend/middlewares/auth"
)

func RegisterBookingRoutes(router *gin.Engine, cld clients.CloudinaryClientWrapper) {
	bookingController := booking_controller.NewBookingController(db.DB, cld)

	router.POST("/bookings", bookingController.CreateBooking)

	// Admin-only routes
	protected := router.Group("/bookings")
	protected.Use(auth.Protect())
	{
		protected.GET("", bookingController.GetAllBookings)
		protected.DELETE("/all", bookingController.DeleteAllBookings)
		protected.DELETE("/by-package/:packageType", bookingController.DeleteBookingsByPackage)
		protected.GET("/:id", bookingController.GetBookingByID)
		protected.PATCH("/:id/toggle-paid", bookingController.TogglePaidStatus)
		protected.DELETE("/:id", bookingController.DeleteBooking)
	}
}
