package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateOAuthState generates the random state parameter for the OAuth
// authorization redirect.
func GenerateOAuthState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
