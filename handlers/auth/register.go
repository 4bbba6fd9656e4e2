package auth

import (
	"errors"
	"log"
	"net/http"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a new account and logs the user in
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a name, email and password."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "name", input.Name)
	utils.RequireEmail(fieldErrors, "email", input.Email)
	if input.Password == "" {
		fieldErrors.Add("password", "This field is required.")
	} else if len(input.Password) < 8 {
		fieldErrors.Add("password", "Must be at least 8 characters long.")
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	var existing models.User
	err := utils.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists. Please log in or use the forgot password option."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating your account. Please try again later."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if err := utils.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating your account. Please try again later."})
		return
	}

	payload, ok := issueTokens(c, &user)
	if !ok {
		return
	}
	payload["message"] = "Registration successful."

	c.JSON(http.StatusCreated, payload)
}
