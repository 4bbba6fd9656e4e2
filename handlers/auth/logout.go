package auth

import (
	"net/http"
	"time"

	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

// Logout revokes the caller's outstanding tokens by stamping the logout
// time and clearing the stored refresh token hash.
func Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now()
	user.LastLogoutAt = &now
	user.RefreshToken = ""
	if err := utils.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}
