package property

import "context"

// Filter narrows listing queries. Category is required; Types and Location
// are optional, with Location matched as a case-insensitive substring.
type Filter struct {
	Types    []Type
	Category Category
	Location string
}

// Repository defines persistence behaviours for properties.
type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id int64) (*Property, error)
	List(ctx context.Context) ([]*Property, error)
	ListByFilter(ctx context.Context, filter Filter) ([]*Property, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id int64) error
}
