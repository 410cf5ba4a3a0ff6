// Package password contains the password strength rules for new
// accounts.
package password

import (
	"errors"
	"strings"
	"unicode"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

const (
	minimumLength      = 8
	maximumLength      = 150
	minimumEntropyBits = 50
	minimumAttrLength  = 3
)

var (
	ErrTooShort       = errors.New("password must be at least 8 characters long")
	ErrTooLong        = errors.New("password must be at most 150 characters long")
	ErrEntirelyDigits = errors.New("password cannot be entirely numeric")
	ErrTooSimilar     = errors.New("password is too similar to the account details")
	ErrTooWeak        = errors.New("password is too weak")
)

// ValidatePassword checks password against the strength rules.
// userAttributes are account details such as the username or email that
// the password must not contain.
func ValidatePassword(password string, userAttributes ...string) error {
	if len(password) < minimumLength {
		return ErrTooShort
	}
	if len(password) > maximumLength {
		return ErrTooLong
	}
	if isDigits(password) {
		return ErrEntirelyDigits
	}

	lower := strings.ToLower(password)
	for _, attr := range userAttributes {
		for _, part := range strings.FieldsFunc(strings.ToLower(attr), isSeparator) {
			if len(part) >= minimumAttrLength && strings.Contains(lower, part) {
				return ErrTooSimilar
			}
		}
	}

	if err := passwordvalidator.Validate(password, minimumEntropyBits); err != nil {
		return errors.Join(ErrTooWeak, err)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == '@' || r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsSpace(r)
}
