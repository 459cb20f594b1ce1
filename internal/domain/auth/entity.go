package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. The same error covers
	// an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailInUse signals a duplicate email registration.
	ErrEmailInUse = errors.New("email already in use")
	// ErrUserNotFound indicates a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenInvalid means a supplied bearer token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrCSRFInvalid means the CSRF token is missing, unverifiable, or not
	// bound to the presented bearer token.
	ErrCSRFInvalid = errors.New("CSRF token invalid or missing")
	// ErrPasswordMismatch indicates the current password is incorrect.
	ErrPasswordMismatch = errors.New("current password is incorrect")
	// ErrPasswordTooShort rejects passwords under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrPasswordReused rejects passwords matching one of the five most
	// recent ones.
	ErrPasswordReused = errors.New("password cannot match any of the five most recent passwords")
	// ErrResetTokenMalformed means the transported reset token could not be
	// decoded.
	ErrResetTokenMalformed = errors.New("reset token is malformed")
	// ErrResetTokenInvalid means no user holds the supplied reset token.
	ErrResetTokenInvalid = errors.New("reset token is invalid")
	// ErrResetTokenExpired means the reset token is older than the reset
	// window.
	ErrResetTokenExpired = errors.New("reset token has expired; request a new one")
)

const (
	// RoleUser is the role assigned to accounts at registration.
	RoleUser = "user"
	// RoleAdmin marks administrative accounts.
	RoleAdmin = "admin"
)

// PasswordHistoryLimit bounds the stored password history, current hash
// included.
const PasswordHistoryLimit = 5

// User models the credential record persisted in storage.
//
// PreviousPasswords holds the most recent password hashes, oldest first and
// always including the current one; it never exceeds PasswordHistoryLimit.
// ResetToken and ResetTokenCreatedAt are set together when a reset is pending
// and cleared together when it completes.
type User struct {
	ID                  int64      `json:"id"`
	Surname             string     `json:"surname"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	Email               string     `json:"email"`
	ImagePath           string     `json:"imagePath"`
	PasswordHash        string     `json:"-"`
	RegisteredAt        time.Time  `json:"registeredAt"`
	PreviousPasswords   []string   `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenCreatedAt *time.Time `json:"-"`
}

// Identity carries the claims embedded in a bearer token. Verification never
// consults the store, so an Identity may be stale relative to the persisted
// user.
type Identity struct {
	ID        int64  `json:"id"`
	Surname   string `json:"surname"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	ImagePath string `json:"imagePath"`
	CSRFNonce string `json:"-"`
}

// IdentityOf derives the token claims for a user.
func IdentityOf(u *User) Identity {
	return Identity{
		ID:        u.ID,
		Surname:   u.Surname,
		Name:      u.Name,
		Role:      u.Role,
		Email:     u.Email,
		ImagePath: u.ImagePath,
	}
}

// AppendPasswordHistory returns a new history slice with hash appended and
// the oldest entries evicted once the bound is exceeded. The input slice is
// never mutated.
func AppendPasswordHistory(history []string, hash string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, hash)
	if len(out) > PasswordHistoryLimit {
		out = out[len(out)-PasswordHistoryLimit:]
	}
	return out
}
