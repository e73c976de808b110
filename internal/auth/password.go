// Package auth implements credential hashing and session tokens: bcrypt
// password digests and signed, time-limited JWTs carrying the user identity.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the uniform failure for login: it never reveals
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword derives a salted bcrypt digest of the plaintext password.
// bcrypt is CPU-bound; callers run per-request goroutines, so hashing never
// stalls other requests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored digest using
// bcrypt's constant-time comparison. Any mismatch maps to
// ErrInvalidCredentials.
func CheckPassword(hash, plaintext string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
