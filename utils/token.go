package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var JwtSecret []byte

// LoadJWTSecret reads JWT_SECRET from the environment. Called once from
// main; tests set JwtSecret directly.
func LoadJWTSecret() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}
	JwtSecret = []byte(secret)
}

// GenerateAccessToken creates a new JWT access token for the given user.
// The issued-at claim lets the auth middleware reject tokens minted
// before the user's last logout.
func GenerateAccessToken(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(72 * time.Hour).Unix(),
	})

	return token.SignedString(JwtSecret)
}

// GenerateRefreshToken creates an opaque refresh token. Only its hash is
// stored server-side.
func GenerateRefreshToken() (string, error) {
	return RandomToken(32)
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
