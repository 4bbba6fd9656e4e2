package auth

import (
	"net/http"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

// RefreshToken rotates the caller's token pair. The stored refresh token
// hash identifies the user, so no access token is required.
func RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a refresh token."})
		return
	}

	hashedInputToken := utils.HashToken(input.RefreshToken)

	var user models.User
	if err := utils.DB.Where("refresh_token = ? AND refresh_token <> ''", hashedInputToken).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	payload, ok := issueTokens(c, &user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, payload)
}
