package property

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a property could not be located.
	ErrNotFound = errors.New("property not found")
	// ErrNoneMatch signals an empty filter result.
	ErrNoneMatch = errors.New("no properties found for the specified criteria")
	// ErrInvalidType indicates an unsupported property type.
	ErrInvalidType = errors.New("invalid property type")
	// ErrInvalidCategory indicates an unsupported property category.
	ErrInvalidCategory = errors.New("invalid property category")
	// ErrInvalidPrice rejects negative listing prices.
	ErrInvalidPrice = errors.New("price cannot be negative")
)

// Type classifies the kind of property.
type Type string

const (
	TypeApartment Type = "apartment"
	TypeHouse     Type = "house"
	TypeVilla     Type = "villa"
	TypeOffice    Type = "office"
	TypeLand      Type = "land"
)

// Category distinguishes sale listings from rentals.
type Category string

const (
	CategorySale Category = "sale"
	CategoryRent Category = "rent"
)

// Property captures a single listing.
type Property struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         Type     `json:"type"`
	Category     Category `json:"category"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Country      string   `json:"country"`
	Area         float64  `json:"area"`
	Rooms        int      `json:"rooms"`
	ImageURLs    []string `json:"imageUrls"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ParseType validates a raw type string.
func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeApartment, TypeHouse, TypeVilla, TypeOffice, TypeLand:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategorySale, CategoryRent:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}
