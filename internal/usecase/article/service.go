package article

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "realty/backend/internal/domain/article"
)

// Service exposes article use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs an article service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// Input defines the payload to create or update an article.
type Input struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	ImageURLs []string `json:"imageUrls"`
}

// List returns all articles.
func (s *Service) List(ctx context.Context) ([]*domain.Article, error) {
	return s.repo.List(ctx)
}

// Get retrieves an article by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// Search looks an article up by title or author, case-insensitively. Exactly
// one of the two may be supplied.
func (s *Service) Search(ctx context.Context, title, author string) (*domain.Article, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	switch {
	case title != "":
		return s.repo.GetByTitle(ctx, title)
	case author != "":
		return s.repo.GetByAuthor(ctx, author)
	default:
		return nil, errors.New("title or author is required")
	}
}

// Create validates and persists a new article.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("title is required")
	}
	a := &domain.Article{
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Author:    strings.TrimSpace(input.Author),
		ImageURLs: input.ImageURLs,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the stored article fields.
func (s *Service) Update(ctx context.Context, id int64, input Input) (*domain.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Title = strings.TrimSpace(input.Title)
	a.Content = input.Content
	a.Author = strings.TrimSpace(input.Author)
	a.ImageURLs = input.ImageURLs

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an article by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
