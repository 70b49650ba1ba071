package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// ListingService serves the public board and the admin CRUD panel.
type ListingService struct {
	listings   ports.ListingRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewListingService(listings ports.ListingRepository, categories ports.CategoryRepository, log zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, categories: categories, log: log}
}

// Browse loads the full pool recency-first and reduces it with the filter
// engine. Order is whatever the repository returned; the filter never
// re-sorts.
func (s *ListingService) Browse(ctx context.Context, t domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error) {
	items, err := s.listings.ListByType(ctx, t, ports.ListOptions{OrderBy: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	return domain.FilterListings(items, spec), nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

// Create inserts a listing. Code uniqueness across the jobs/services union
// is enforced by the store's unique index; a collision surfaces as
// domain.ErrCodeExists.
func (s *ListingService) Create(ctx context.Context, input ports.ListingInput) (*domain.Listing, error) {
	l, err := buildListing(input)
	if err != nil {
		return nil, err
	}

	created, err := s.listings.Create(ctx, l)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("code", created.Code).Str("type", string(created.Type)).Msg("listing created")
	return created, nil
}

func (s *ListingService) Update(ctx context.Context, id string, input ports.ListingInput) error {
	l, err := buildListing(input)
	if err != nil {
		return err
	}
	existing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}

	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	return s.listings.Update(ctx, l)
}

func (s *ListingService) Delete(ctx context.Context, id string) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("listing deleted")
	return nil
}

func buildListing(input ports.ListingInput) (*domain.Listing, error) {
	if !domain.ValidListingType(input.Type) ||
		input.Title == "" || input.Code == "" || input.CategoryID == "" ||
		input.Description == "" || input.Location == "" {
		return nil, domain.ErrInvalidListing
	}

	now := time.Now().UTC()
	l := &domain.Listing{
		Type:            input.Type,
		Title:           input.Title,
		Code:            input.Code,
		CategoryID:      input.CategoryID,
		Description:     input.Description,
		FullDescription: input.FullDescription,
		Price:           input.Price,
		Location:        input.Location,
		Images:          input.Images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if input.Type == domain.TypeJob {
		l.Surface = input.Surface
	}
	return l, nil
}

func (s *ListingService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx, ports.ListOptions{OrderBy: "name"})
}

func (s *ListingService) CreateCategory(ctx context.Context, name, color string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidListing
	}
	now := time.Now().UTC()
	return s.categories.Create(ctx, &domain.Category{
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *ListingService) UpdateCategory(ctx context.Context, id, name, color string) error {
	if name == "" {
		return domain.ErrInvalidListing
	}
	return s.categories.Update(ctx, id, name, color)
}

func (s *ListingService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
