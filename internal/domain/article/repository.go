package article

import "context"

// Repository defines persistence behaviours for articles. Title and author
// lookups are case-insensitive.
type Repository interface {
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, id int64) (*Article, error)
	GetByTitle(ctx context.Context, title string) (*Article, error)
	GetByAuthor(ctx context.Context, author string) (*Article, error)
	List(ctx context.Context) ([]*Article, error)
	Update(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id int64) error
}
