package property

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "realty/backend/internal/domain/property"
)

// Service exposes property listing use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a property service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// CreateInput defines the payload to create a listing.
type CreateInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Country      string   `json:"country"`
	Area         float64  `json:"area"`
	Rooms        int      `json:"rooms"`
	ImageURLs    []string `json:"imageUrls"`
}

// UpdateInput defines the payload to update a listing.
type UpdateInput struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Country      string   `json:"country"`
	Area         float64  `json:"area"`
	Rooms        int      `json:"rooms"`
	ImageURLs    []string `json:"imageUrls"`
}

// Create validates and persists a new listing.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Property, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("title is required")
	}
	if input.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	typ, err := domain.ParseType(input.Type)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	p := &domain.Property{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Type:         typ,
		Category:     category,
		Price:        input.Price,
		Location:     input.Location,
		City:         input.City,
		Neighborhood: input.Neighborhood,
		Country:      input.Country,
		Area:         input.Area,
		Rooms:        input.Rooms,
		ImageURLs:    input.ImageURLs,
		RegisteredAt: s.nowFunc().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all listings.
func (s *Service) List(ctx context.Context) ([]*domain.Property, error) {
	return s.repo.List(ctx)
}

// Get retrieves a listing by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the stored listing fields.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Property, error) {
	if input.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	p, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	typ, err := domain.ParseType(input.Type)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(input.Title)
	p.Description = input.Description
	p.Type = typ
	p.Category = category
	p.Price = input.Price
	p.Location = input.Location
	p.City = input.City
	p.Neighborhood = input.Neighborhood
	p.Country = input.Country
	p.Area = input.Area
	p.Rooms = input.Rooms
	p.ImageURLs = input.ImageURLs

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a listing by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Filter returns listings matching the raw filter values. Category is
// required; types and location are optional. An empty result is
// ErrNoneMatch.
func (s *Service) Filter(ctx context.Context, rawTypes []string, rawCategory, location string) ([]*domain.Property, error) {
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	filter := domain.Filter{Category: category, Location: strings.TrimSpace(location)}
	for _, raw := range rawTypes {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		typ, err := domain.ParseType(raw)
		if err != nil {
			return nil, err
		}
		filter.Types = append(filter.Types, typ)
	}

	properties, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, domain.ErrNoneMatch
	}
	return properties, nil
}
