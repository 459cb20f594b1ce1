package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "realty/backend/internal/domain/auth"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	user, err := svc.Register(ctx, RegisterInput{
		Surname:  "Doe",
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "initial-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "response must not leak the hash")
	assert.Empty(t, user.PreviousPasswords)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	require.Len(t, stored.PreviousPasswords, 1, "registration seeds the history with the initial hash")
	assert.Equal(t, stored.PasswordHash, stored.PreviousPasswords[0])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	input := RegisterInput{Surname: "Doe", Name: "Jane", Email: "jane@example.com", Password: "initial-password"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "initial-password"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "jane@example.com", "initial-password")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jane@example.com", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "initial-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "initial-password"})
	require.NoError(t, err)

	t.Run("same as current is a reuse", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "jane@example.com", "initial-password", "initial-password")
		assert.ErrorIs(t, err, domain.ErrPasswordReused)
	})

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "jane@example.com", "wrong", "second-password")
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("too short new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "jane@example.com", "initial-password", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "nobody@example.com", "initial-password", "second-password")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("successful change invalidates the old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "jane@example.com", "initial-password", "second-password")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "jane@example.com", "initial-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, err = svc.Login(ctx, "jane@example.com", "second-password")
		assert.NoError(t, err)
	})
}

func TestChangePassword_HistoryEviction(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "password-0"})
	require.NoError(t, err)

	// Four changes fill the five-slot history; the original is still held.
	current := "password-0"
	for i := 1; i <= 4; i++ {
		next := fmt.Sprintf("password-%d", i)
		require.NoError(t, svc.ChangePassword(ctx, "jane@example.com", current, next))
		current = next
	}

	err = svc.ChangePassword(ctx, "jane@example.com", current, "password-0")
	assert.ErrorIs(t, err, domain.ErrPasswordReused)

	// One more change evicts the original hash, making it eligible again.
	require.NoError(t, svc.ChangePassword(ctx, "jane@example.com", current, "password-5"))
	require.NoError(t, svc.ChangePassword(ctx, "jane@example.com", "password-5", "password-0"))

	stored, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Len(t, stored.PreviousPasswords, domain.PasswordHistoryLimit)
}
