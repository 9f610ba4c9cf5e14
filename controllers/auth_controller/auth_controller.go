package auth_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/admin_models"
	"github.com/carkumbh/backend/utils"
)

// AuthController handles admin login and first-time setup.
type AuthController struct {
	DB *pgxpool.Pool
}

func NewAuthController(db *pgxpool.Pool) *AuthController {
	return &AuthController{DB: db}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func issueToken(adminID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": adminID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(utils.GetJWTSecret())
}

// Login authenticates an admin and returns a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	admin, err := admin_models.GetAdminByEmail(c.Request.Context(), ac.DB, req.Email)
	if err != nil || !admin.MatchPassword(req.Password) {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := issueToken(admin.ID.String())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to sign admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    admin.ID,
		"email": admin.Email,
		"token": token,
	})
}

// Setup creates the initial admin account. Once an admin with the given
// email exists this endpoint refuses.
func (ac *AuthController) Setup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	exists, err := admin_models.AdminExists(c.Request.Context(), ac.DB, req.Email)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to check admin existence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Setup failed"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Admin already exists"})
		return
	}

	admin, err := admin_models.CreateAdmin(c.Request.Context(), ac.DB, req.Email, req.Password)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Setup failed"})
		return
	}

	token, err := issueToken(admin.ID.String())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to sign admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Setup failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    admin.ID,
		"email": admin.Email,
		"token": token,
	})
}

// Profile returns the authenticated admin's account.
func (ac *AuthController) Profile(c *gin.Context) {
	adminID, err := utils.GetAdminIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	admin, err := admin_models.GetAdminByID(c.Request.Context(), ac.DB, adminID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, admin)
}
