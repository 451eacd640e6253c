package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken returns a random 256-bit session token, hex encoded
// (64 lowercase characters).
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
