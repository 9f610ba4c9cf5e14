package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAdminIDFromContext extracts the authenticated admin's id from the Gin
// context. The auth middleware stores it as a string under "sub".
func GetAdminIDFromContext(c *gin.Context) (uuid.UUID, error) {
	sub, exists := c.Get("sub")
	if !exists {
		return uuid.Nil, fmt.Errorf("authentication required: admin ID not found")
	}

	idStr, ok := sub.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid admin ID format in context")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid admin ID format: %w", err)
	}
	return id, nil
}
