package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A cost of 0 uses the bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch is reported as an auth error, not exposed to the caller as a
// bcrypt detail.
func VerifyPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.AuthFailed("Incorrect login credentials")
		}
		return err
	}
	return nil
}
