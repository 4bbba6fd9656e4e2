package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt"
)

// ExtractClaims parses a "Bearer <token>" Authorization header and
// returns the verified claims.
func ExtractClaims(authHeader string) (jwt.MapClaims, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ExtractUserIDFromToken returns the user ID carried by a bearer token.
func ExtractUserIDFromToken(authHeader string) (uint, error) {
	claims, err := ExtractClaims(authHeader)
	if err != nil {
		return 0, err
	}

	userIDFloat, ok := claims["user_id"].(float64) // JWT numeric values are float64
	if !ok {
		return 0, errors.New("invalid user ID in token")
	}

	return uint(userIDFloat), nil
}
