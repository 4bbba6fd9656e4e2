package auth

import (
	"net/http"

	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ChangePassword updates the caller's password after verifying the
// current one.
func ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide your current and new password."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "current_password", input.CurrentPassword)
	if input.NewPassword == "" {
		fieldErrors.Add("new_password", "This field is required.")
	} else if len(input.NewPassword) < 8 {
		fieldErrors.Add("new_password", "Must be at least 8 characters long.")
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	user.Password = string(hashedPassword)
	if err := utils.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your password. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}
