package student_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/student_models"
)

// StudentController handles workshop registrations.
type StudentController struct {
	DB *pgxpool.Pool
}

func NewStudentController(db *pgxpool.Pool) *StudentController {
	return &StudentController{DB: db}
}

type registerRequest struct {
	StudentName          string `json:"studentName" binding:"required"`
	WhatsappNumber       string `json:"whatsappNumber" binding:"required"`
	HighestQualification string `json:"highestQualification" binding:"required"`
	WorkingInIT          bool   `json:"workingInIT"`
}

// Register creates a new workshop registration.
func (sc *StudentController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	student, err := student_models.CreateStudent(c.Request.Context(), sc.DB, &student_models.Student{
		StudentName:          req.StudentName,
		WhatsappNumber:       req.WhatsappNumber,
		HighestQualification: req.HighestQualification,
		WorkingInIT:          req.WorkingInIT,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to register student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Student registered successfully", "student": student})
}

// GetAllStudents lists every registration, admin only.
func (sc *StudentController) GetAllStudents(c *gin.Context) {
	students, err := student_models.GetAllStudents(c.Request.Context(), sc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetPublicStudents lists names and qualifications only.
func (sc *StudentController) GetPublicStudents(c *gin.Context) {
	students, err := student_models.GetPublicStudents(c.Request.Context(), sc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch students"})
		return
	}
	c.JSON(http.StatusOK, students)
}
