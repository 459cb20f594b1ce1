package postgres

import (
	"context"
	"errors"
	"time"

	domain "realty/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists credential records in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, surname, name, role, email, image_path, password_hash, registered_at, previous_passwords, reset_token, reset_token_created_at`

// Create inserts a new user record, assigning the generated id.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (surname, name, role, email, image_path, password_hash, registered_at, previous_passwords)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	err := r.pool.QueryRow(ctx, query,
		user.Surname,
		user.Name,
		user.Role,
		user.Email,
		user.ImagePath,
		user.PasswordHash,
		user.RegisteredAt,
		user.PreviousPasswords,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailInUse
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email. The match is case-sensitive.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySurname retrieves a user by surname.
func (r *UserRepository) GetBySurname(ctx context.Context, surname string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE surname = $1`
	return r.getOne(ctx, query, surname)
}

// GetByResetToken retrieves the user holding a pending reset token.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	return r.getOne(ctx, query, token)
}

// List returns all users ordered by registration date.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY registered_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update modifies the profile fields of an existing user record.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
UPDATE users
SET surname = $2, name = $3, role = $4, email = $5, image_path = $6
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Surname,
		user.Name,
		user.Role,
		user.Email,
		user.ImagePath,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailInUse
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and history and clears any
// pending reset token in a single statement.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, history []string) error {
	const query = `
UPDATE users
SET password_hash = $2,
    previous_passwords = $3,
    reset_token = NULL,
    reset_token_created_at = NULL
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, id, passwordHash, history)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a pending reset token, overwriting any prior one.
func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, createdAt time.Time) error {
	const query = `
UPDATE users
SET reset_token = $2, reset_token_created_at = $3
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, id, token, createdAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes a user by id.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Surname,
		&u.Name,
		&u.Role,
		&u.Email,
		&u.ImagePath,
		&u.PasswordHash,
		&u.RegisteredAt,
		&u.PreviousPasswords,
		&u.ResetToken,
		&u.ResetTokenCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
