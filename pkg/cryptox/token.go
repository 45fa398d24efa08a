package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Secret size constants (in bytes before encoding).
const (
	// SecretSize256 provides 256 bits of entropy (43 chars base64url).
	SecretSize256 = 32
	// SecretSize512 provides 512 bits of entropy (86 chars base64url).
	SecretSize512 = 64
)

// RandomBytes returns n bytes from the system CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cryptox: size must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}
	return buf, nil
}

// NewSessionKey returns a fresh random AES-256 session key.
func NewSessionKey() ([]byte, error) {
	return RandomBytes(SessionKeySize)
}

// GenerateSecret returns a random base64url secret (no padding) of size bytes.
func GenerateSecret(size int) (string, error) {
	buf, err := RandomBytes(size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateSecret is like GenerateSecret but panics on error.
// Use this only during initialization.
func MustGenerateSecret(size int) string {
	s, err := GenerateSecret(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate secret: %v", err))
	}
	return s
}
