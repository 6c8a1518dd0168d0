package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// JWTSecrets is a pair of independent signing keys
type JWTSecrets struct {
	Access  string
	Refresh string
}

// GenerateSecret returns n random bytes hex-encoded
func GenerateSecret(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateJWTSecrets generates distinct 256-bit access and refresh secrets
func GenerateJWTSecrets() (JWTSecrets, error) {
	var secrets JWTSecrets
	var err error

	if secrets.Access, err = GenerateSecret(32); err != nil {
		return JWTSecrets{}, fmt.Errorf("failed to generate access secret: %w", err)
	}
	if secrets.Refresh, err = GenerateSecret(32); err != nil {
		return JWTSecrets{}, fmt.Errorf("failed to generate refresh secret: %w", err)
	}

	return secrets, nil
}
