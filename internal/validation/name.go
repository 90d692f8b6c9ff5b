package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameRunes = 100

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 100 characters)")
	ErrNameInvalid  = errors.New("name contains invalid characters")
)

// ValidateName checks the display name shown in the header and gallery.
// Length counts characters, not bytes.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return ErrNameRequired
	case utf8.RuneCountInString(name) > maxNameRunes:
		return ErrNameTooLong
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return ErrNameInvalid
	}
	return nil
}
