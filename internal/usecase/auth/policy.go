package auth

import (
	domain "realty/backend/internal/domain/auth"

	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// ValidateNewPassword checks a candidate password against the length rule and
// the stored history. The history holds bcrypt hashes, so the comparison goes
// through bcrypt's own constant-time verify rather than string equality.
// Pure validation, no side effects.
func ValidateNewPassword(candidate string, history []string) error {
	if len(candidate) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	for _, hash := range history {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil {
			return domain.ErrPasswordReused
		}
	}
	return nil
}
