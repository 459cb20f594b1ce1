package auth

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for credential records.
// Lookups return ErrUserNotFound when no row matches; they never panic.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetBySurname(ctx context.Context, surname string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	// UpdatePassword replaces the password hash and history in one statement
	// and clears any pending reset token.
	UpdatePassword(ctx context.Context, id int64, passwordHash string, history []string) error
	// SetResetToken stores a pending reset token, overwriting any prior one.
	SetResetToken(ctx context.Context, id int64, token string, createdAt time.Time) error
	Delete(ctx context.Context, id int64) error
}
