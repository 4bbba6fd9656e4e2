package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ForgotPassword issues a fresh reset token and mails the reset link.
// Any previously issued token for the email is superseded.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email address."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.RequireEmail(fieldErrors, "email", input.Email)
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	var user models.User
	if err := utils.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		fieldErrors.Add("email", "No account was found with this email address.")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	token, err := utils.RandomToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue processing your request. Please try again later."})
		return
	}

	// One live token per email: drop any prior row before inserting.
	if err := utils.DB.Where("email = ?", user.Email).Delete(&models.PasswordReset{}).Error; err != nil {
		log.Printf("Failed to clear previous reset token for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue processing your request. Please try again later."})
		return
	}

	reset := models.PasswordReset{
		Email:     user.Email,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := utils.DB.Create(&reset).Error; err != nil {
		log.Printf("Failed to store reset token for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue processing your request. Please try again later."})
		return
	}

	sendResetMail(user.Email, token)

	c.JSON(http.StatusOK, gin.H{"message": "A password reset link has been sent to your email address."})
}

// ResetPassword consumes a reset token and updates the user's password.
// Consumed tokens are deleted so they cannot be replayed.
func ResetPassword(c *gin.Context) {
	var input struct {
		Email                string `json:"email"`
		Token                string `json:"token"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.RequireEmail(fieldErrors, "email", input.Email)
	utils.Require(fieldErrors, "token", input.Token)
	if input.Password == "" {
		fieldErrors.Add("password", "This field is required.")
	} else if len(input.Password) < 8 {
		fieldErrors.Add("password", "Must be at least 8 characters long.")
	}
	if input.Password != input.PasswordConfirmation {
		fieldErrors.Add("password_confirmation", "Passwords do not match.")
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	var reset models.PasswordReset
	err := utils.DB.Where("email = ?", input.Email).First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && reset.Token != input.Token) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This password reset token is invalid."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue processing your request. Please try again later."})
		return
	}

	// Expired rows are rejected but left in place; the next request for
	// this email overwrites them anyway.
	if time.Since(reset.CreatedAt) > resetTokenValidity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This password reset token has expired. Please request a new one."})
		return
	}

	var user models.User
	if err := utils.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This password reset token is invalid."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	user.Password = string(hashedPassword)
	if err := utils.DB.Save(&user).Error; err != nil {
		log.Printf("Failed to update user password in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your password. Please try again later."})
		return
	}

	if err := utils.DB.Delete(&reset).Error; err != nil {
		log.Printf("Failed to delete consumed reset token for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been reset successfully. You can now log in with your new password."})
}
