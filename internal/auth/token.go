package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// KeyLength is the length of a token key in hex characters.
const KeyLength = 40

// Scheme is the Authorization header scheme for token credentials.
const Scheme = "Token"

// GenerateKey returns a new random opaque token key.
func GenerateKey() (string, error) {
	buf := make([]byte, KeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidKeyFormat reports whether key could have been produced by GenerateKey.
// It lets callers reject garbage without a store lookup.
func ValidKeyFormat(key string) bool {
	if len(key) != KeyLength {
		return false
	}
	return strings.Trim(key, "0123456789abcdef") == ""
}
