package ports

import (
	"context"

	"github.com/bacheca/board-api/internal/core/domain"
)

// ListingInput carries all data needed to create or replace a listing.
// Surface is only honored for jobs.
type ListingInput struct {
	Type            domain.ListingType
	Title           string
	Code            string
	CategoryID      string
	Description     string
	FullDescription string
	Price           float64
	Location        string
	Surface         float64
	Images          []string
}

// ListingService exposes browse operations for clients and CRUD for the
// admin panel. Browse fetches the full recency-ordered pool and reduces it
// with the in-memory filter engine, mirroring how the board renders.
type ListingService interface {
	Browse(ctx context.Context, t domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, input ListingInput) (*domain.Listing, error)
	Update(ctx context.Context, id string, input ListingInput) error
	Delete(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name, color string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name, color string) error
	DeleteCategory(ctx context.Context, id string) error
}
