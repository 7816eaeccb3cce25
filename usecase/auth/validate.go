package auth

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/skillswap/backend/domain"
)

const minPasswordLength = 8

// ValidateEmail rejects anything that is not a plain addr-spec.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, ".") {
		return domain.NewError(domain.ErrCodeInvalid, "invalid email format")
	}
	return nil
}

// ValidatePassword enforces the strong-password policy: at least eight
// characters with an upper-case letter, a lower-case letter, a digit and
// a symbol.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewError(domain.ErrCodeInvalid, "weak password")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return domain.NewError(domain.ErrCodeInvalid, "weak password")
	}
	return nil
}
