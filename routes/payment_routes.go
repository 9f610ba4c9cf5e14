package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/config/db"
	"github.com/carkumbh/backend/controllers/payment_controller"
	"github.com/carkumbh/backend/middlewares"
)

func RegisterPaymentRoutes(router *gin.Engine) {
	paymentController := payment_controller.NewPaymentController(db.DB)

	payments := router.Group("/payments")
	{
		payments.POST("/create-order", middlewares.NewRateLimiter("20-1m", "createOrder"), paymentController.CreateOrder)
		payments.POST("/verify", paymentController.VerifyPayment)
		payments.GET("/price-breakdown/:package", paymentController.GetPriceBreakdown)
	}
}
