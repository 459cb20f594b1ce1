package auth

import (
	"context"
	"time"

	domain "realty/backend/internal/domain/auth"
)

// memoryUserRepo is an in-memory UserRepository used across the usecase
// tests.
type memoryUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetBySurname(_ context.Context, surname string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Surname == surname {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string, history []string) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.PreviousPasswords = history
	user.ResetToken = nil
	user.ResetTokenCreatedAt = nil
	return nil
}

func (r *memoryUserRepo) SetResetToken(_ context.Context, id int64, token string, createdAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenCreatedAt = &createdAt
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
