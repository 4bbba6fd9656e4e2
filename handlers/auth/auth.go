package auth

import (
	"net/http"
	"time"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

const resetTokenValidity = 60 * time.Minute

// sendResetMail is a hook so tests can capture outbound mail.
var sendResetMail = utils.SendResetEmail

func currentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return models.User{}, false
	}
	return userInterface.(models.User), true
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"currency": user.Currency,
	}
}

// issueTokens generates a fresh access/refresh token pair for the user
// and stores the refresh token hash. Returns false after writing an error
// response.
func issueTokens(c *gin.Context, user *models.User) (gin.H, bool) {
	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return nil, false
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate refresh token"})
		return nil, false
	}

	user.RefreshToken = utils.HashToken(refreshToken)
	if err := utils.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save refresh token"})
		return nil, false
	}

	return gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"user":          userPayload(*user),
	}, true
}
