// Package auth implements password digests, session tokens, and the
// login/enrichment policy.
package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt digest of the plaintext password.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// PlaceholderPassword synthesizes a random throwaway password for
// OAuth-created accounts. The plaintext is never surfaced; only its digest
// is stored, so these accounts cannot log in with credentials.
func PlaceholderPassword() string {
	return "oauth_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// VerifyPassword compares a plaintext password against a stored digest.
// It returns false for a malformed or empty digest instead of propagating
// the error.
func VerifyPassword(password, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
