package user

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "realty/backend/internal/domain/auth"
	authusecase "realty/backend/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
)

// Service provides profile queries and updates on top of the credential
// store.
type Service struct {
	repo    domain.UserRepository
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repository.
func NewService(repo domain.UserRepository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// AdminUpdateInput defines the fields an administrator may change.
type AdminUpdateInput struct {
	ID        int64  `json:"id"`
	Surname   string `json:"surname"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	ImagePath string `json:"imagePath"`
}

// SelfUpdateInput defines the fields a user may change on their own profile.
// Password is optional; when present it is re-hashed with the history pushed.
type SelfUpdateInput struct {
	ID        int64  `json:"id"`
	Surname   string `json:"surname"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	ImagePath string `json:"imagePath"`
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// GetByID retrieves a single user by identifier.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// GetBySurname retrieves a single user by surname.
func (s *Service) GetBySurname(ctx context.Context, surname string) (*domain.User, error) {
	surname = strings.TrimSpace(surname)
	if surname == "" {
		return nil, errors.New("surname is required")
	}
	user, err := s.repo.GetBySurname(ctx, surname)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// GetByEmail retrieves a single user by email. The match is case-sensitive.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// UpdateByAdmin replaces the admin-editable profile fields.
func (s *Service) UpdateByAdmin(ctx context.Context, input AdminUpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	user.Surname = strings.TrimSpace(input.Surname)
	user.Name = strings.TrimSpace(input.Name)
	user.Role = strings.TrimSpace(input.Role)
	user.Email = strings.TrimSpace(input.Email)
	user.ImagePath = input.ImagePath

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// UpdateBySelf replaces the self-editable profile fields. A non-empty
// password is validated against the policy and re-hashed.
func (s *Service) UpdateBySelf(ctx context.Context, input SelfUpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	user.Surname = strings.TrimSpace(input.Surname)
	user.Name = strings.TrimSpace(input.Name)
	user.ImagePath = input.ImagePath

	if input.Password != "" {
		if err := authusecase.ValidateNewPassword(input.Password, user.PreviousPasswords); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		history := domain.AppendPasswordHistory(user.PreviousPasswords, string(hashed))
		if err := s.repo.UpdatePassword(ctx, user.ID, string(hashed), history); err != nil {
			return nil, err
		}
	}

	return sanitizeUser(user), nil
}

// Delete removes the target user. Deletion is unconditional and terminal.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
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

func sanitizeUsers(items []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeUser(item))
	}
	return out
}
