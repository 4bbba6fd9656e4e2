package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type googleTokenInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// verifyGoogleIDToken is a hook so tests can stub the Google endpoint.
var verifyGoogleIDToken = fetchGoogleTokenInfo

// fetchGoogleTokenInfo validates an ID token against Google's tokeninfo
// endpoint and checks it was issued for this application.
func fetchGoogleTokenInfo(idToken string) (*googleTokenInfo, error) {
	resp, err := http.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if info.Audience != os.Getenv("GOOGLE_CLIENT_ID") {
		return nil, errors.New("token audience mismatch")
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, errors.New("email not verified")
	}

	return &info, nil
}

// GoogleAuth signs a user in with a Google ID token, creating the account
// on first use.
func GoogleAuth(c *gin.Context) {
	info, ok := verifiedGoogleToken(c)
	if !ok {
		return
	}

	var user models.User
	err := utils.DB.Where("email = ?", info.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = createGoogleUser(info)
		if err != nil {
			log.Printf("Failed to create Google user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating your account. Please try again later."})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue processing your request. Please try again later."})
		return
	}

	finishGoogleLogin(c, &user, info)
}

// GoogleLogin signs in an existing user with a Google ID token.
func GoogleLogin(c *gin.Context) {
	info, ok := verifiedGoogleToken(c)
	if !ok {
		return
	}

	var user models.User
	if err := utils.DB.Where("email = ?", info.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No account was found for this Google identity. Please sign up first."})
		return
	}

	finishGoogleLogin(c, &user, info)
}

func verifiedGoogleToken(c *gin.Context) (*googleTokenInfo, bool) {
	var input struct {
		IDToken string `json:"id_token"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a Google ID token."})
		return nil, false
	}

	info, err := verifyGoogleIDToken(input.IDToken)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in could not be verified."})
		return nil, false
	}

	return info, true
}

// createGoogleUser stores a new account for a verified Google identity.
// A random password keeps the credential login path closed until the user
// sets one through the reset flow.
func createGoogleUser(info *googleTokenInfo) (models.User, error) {
	randomPassword, err := utils.RandomToken(32)
	if err != nil {
		return models.User{}, err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(randomPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}

	user := models.User{
		Name:     name,
		Email:    info.Email,
		Password: string(hashedPassword),
		GoogleID: info.Subject,
	}
	if err := utils.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func finishGoogleLogin(c *gin.Context, user *models.User, info *googleTokenInfo) {
	if user.GoogleID == "" {
		user.GoogleID = info.Subject
	}

	payload, ok := issueTokens(c, user)
	if !ok {
		return
	}
	payload["message"] = "Login successful."

	c.JSON(http.StatusOK, payload)
}
