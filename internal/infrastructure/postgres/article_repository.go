package postgres

import (
	"context"
	"errors"

	domain "realty/backend/internal/domain/article"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArticleRepository persists articles in PostgreSQL.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository constructs a repository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `id, title, content, author, image_urls, created_at`

// Create inserts a new article, assigning the generated id.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	const query = `
INSERT INTO articles (title, content, author, image_urls, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	return r.pool.QueryRow(ctx, query,
		a.Title,
		a.Content,
		a.Author,
		a.ImageURLs,
		a.CreatedAt,
	).Scan(&a.ID)
}

// GetByID fetches an article by id.
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByTitle fetches an article by title, case-insensitively.
func (r *ArticleRepository) GetByTitle(ctx context.Context, title string) (*domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE LOWER(title) = LOWER($1)`
	return r.getOne(ctx, query, title)
}

// GetByAuthor fetches an article by author, case-insensitively.
func (r *ArticleRepository) GetByAuthor(ctx context.Context, author string) (*domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE LOWER(author) = LOWER($1)`
	return r.getOne(ctx, query, author)
}

// List returns all articles, newest first.
func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Update writes article changes to the database.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	const query = `
UPDATE articles
SET title = $2, content = $3, author = $4, image_urls = $5
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Content,
		a.Author,
		a.ImageURLs,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an article by id.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) getOne(ctx context.Context, query string, arg any) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Author,
		&a.ImageURLs,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
