package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken returns a hex-encoded string of n random bytes, so the
// result is 2n characters long.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
