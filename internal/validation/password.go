package validation

import (
	"errors"
	"strings"
)

const MinPasswordLength = 8

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 characters")
	ErrPasswordCommon   = errors.New("password is too common, please choose a stronger one")
)

var commonPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword enforces length bounds and rejects well-known passwords.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordCommon
		}
	}

	return nil
}
