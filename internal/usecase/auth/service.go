package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "realty/backend/internal/domain/auth"

	"golang.org/x/crypto/bcrypt"
)

// Service coordinates login, registration, and password-change flows.
type Service struct {
	users   domain.UserRepository
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository) *Service {
	return &Service{
		users:   users,
		nowFunc: time.Now,
	}
}

// RegisterInput defines the payload to create a new account.
type RegisterInput struct {
	Surname  string
	Name     string
	Email    string
	Password string
}

// Login validates credentials and returns the user on success. Unknown email
// and wrong password return the same ErrInvalidCredentials so callers cannot
// tell which check failed.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

// Register creates a new account with the default role. The initial hash
// seeds the password history so the first password counts against reuse.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Surname:           strings.TrimSpace(input.Surname),
		Name:              strings.TrimSpace(input.Name),
		Role:              domain.RoleUser,
		Email:             email,
		PasswordHash:      string(hashed),
		RegisteredAt:      s.nowFunc().UTC(),
		PreviousPasswords: []string{string(hashed)},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// ChangePassword verifies the old password, validates the new one against the
// policy, and persists the new hash with the history pushed.
func (s *Service) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}

	if err := ValidateNewPassword(newPassword, user.PreviousPasswords); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	history := domain.AppendPasswordHistory(user.PreviousPasswords, string(hashed))
	return s.users.UpdatePassword(ctx, user.ID, string(hashed), history)
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	copy.PreviousPasswords = nil
	copy.ResetToken = nil
	copy.ResetTokenCreatedAt = nil
	return &copy
}
