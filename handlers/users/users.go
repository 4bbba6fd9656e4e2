package users

import (
	"errors"
	"net/http"
	"strconv"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return models.User{}, false
	}
	return userInterface.(models.User), true
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"currency": user.Currency,
		},
	})
}

// UpdateCurrency changes the user's preferred currency symbol
func UpdateCurrency(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Currency string `json:"currency"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a currency symbol."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "currency", input.Currency)
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	if err := utils.DB.Model(&user).Update("currency", input.Currency).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update currency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Currency updated successfully.", "currency": input.Currency})
}

// UpdateUser updates the caller's profile. The path ID must match the
// authenticated user; anything else is reported as not found.
func UpdateUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	idParam, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || uint(idParam) != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a name and email."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "name", input.Name)
	utils.RequireEmail(fieldErrors, "email", input.Email)
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	if input.Email != user.Email {
		var existing models.User
		err := utils.DB.Where("email = ? AND id <> ?", input.Email, user.ID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your profile. Please try again later."})
			return
		}
	}

	user.Name = input.Name
	user.Email = input.Email
	if err := utils.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your profile. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"currency": user.Currency,
		},
	})
}
