package auth

import (
	"net/http"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := utils.ExtractClaims(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userIDFloat, ok := claims["user_id"].(float64) // JWT numeric values are float64
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		var user models.User
		if err := utils.DB.First(&user, uint(userIDFloat)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		// Tokens minted before the user's last logout are revoked.
		if user.LastLogoutAt != nil {
			issuedAtFloat, ok := claims["iat"].(float64)
			if !ok || int64(issuedAtFloat) < user.LastLogoutAt.Unix() {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked. Please log in again."})
				c.Abort()
				return
			}
		}

		c.Set("user", user)

		c.Next()
	}
}
