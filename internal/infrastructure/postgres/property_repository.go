package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "realty/backend/internal/domain/property"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PropertyRepository persists property listings in PostgreSQL.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository constructs a repository.
func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

const propertyColumns = `id, title, description, type, category, price, location, city, neighborhood, country, area, rooms, image_urls, registered_at`

// Create inserts a new property, assigning the generated id.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	const query = `
INSERT INTO properties (title, description, type, category, price, location, city, neighborhood, country, area, rooms, image_urls, registered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id
`
	return r.pool.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Type,
		p.Category,
		p.Price,
		p.Location,
		p.City,
		p.Neighborhood,
		p.Country,
		p.Area,
		p.Rooms,
		p.ImageURLs,
		p.RegisteredAt,
	).Scan(&p.ID)
}

// GetByID fetches a property by id.
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all properties, newest first.
func (r *PropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties ORDER BY registered_at DESC`
	return r.listQuery(ctx, query)
}

// ListByFilter returns properties matching the filter. Category is always
// applied; types and location narrow the result when present.
func (r *PropertyRepository) ListByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE category = $1`
	args := []any{filter.Category}

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		args = append(args, types)
		query += fmt.Sprintf(" AND type = ANY($%d)", len(args))
	}
	if strings.TrimSpace(filter.Location) != "" {
		args = append(args, "%"+filter.Location+"%")
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}
	query += " ORDER BY registered_at DESC"

	return r.listQuery(ctx, query, args...)
}

// Update writes property changes to the database.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	const query = `
UPDATE properties
SET title = $2,
    description = $3,
    type = $4,
    category = $5,
    price = $6,
    location = $7,
    city = $8,
    neighborhood = $9,
    country = $10,
    area = $11,
    rooms = $12,
    image_urls = $13
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Type,
		p.Category,
		p.Price,
		p.Location,
		p.City,
		p.Neighborhood,
		p.Country,
		p.Area,
		p.Rooms,
		p.ImageURLs,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a property by id.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM properties WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) listQuery(ctx context.Context, query string, args ...any) ([]*domain.Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Category,
		&p.Price,
		&p.Location,
		&p.City,
		&p.Neighborhood,
		&p.Country,
		&p.Area,
		&p.Rooms,
		&p.ImageURLs,
		&p.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
