package validation

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailRequired = errors.New("email address is required")
	ErrEmailTooLong  = errors.New("email address is too long (max 254 characters)")
	ErrEmailInvalid  = errors.New("invalid email address format")
)

// ValidateEmail checks length and RFC 5322 syntax of an already normalized address.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	if len(email) > 254 {
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}

	return nil
}
