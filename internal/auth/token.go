package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateTokenKey returns a 64-character hex string from 32 bytes of
// crypto/rand, used as the opaque bearer token value.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
