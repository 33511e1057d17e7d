package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"roomies-go/internal/apperr"
)

const minPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for unknown email, wrong password and
	// password-less accounts alike, so responses carry no enumeration signal.
	ErrInvalidCredentials = apperr.Authentication("invalid_credentials", "invalid email or password")
	ErrWeakPassword       = apperr.Validation("weak_password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
)

func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash against a candidate password. An empty
// hash (provisioned account with no credential) never matches.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
