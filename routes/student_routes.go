package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/config/db"
	"github.com/carkumbh/backend/controllers/student_controller"
	"github.com/carkumbh/backend/middlewares/auth"
)

func RegisterStudentRoutes(router *gin.Engine) {
	studentController := student_controller.NewStudentController(db.DB)

	students := router.Group("/students")
	{
		students.POST("/register", studentController.Register)
		students.GET("/public", studentController.GetPublicStudents)
		students.GET("", auth.Protect(), studentController.GetAllStudents)
	}
}
