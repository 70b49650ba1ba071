package ports

import (
	"context"

	"github.com/bacheca/board-api/internal/core/domain"
)

// ListOptions selects the ordering of a full-collection read.
type ListOptions struct {
	OrderBy string // field name; empty = created_at
	Desc    bool
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)
	Update(ctx context.Context, id string, username, role string) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Category, error)
	Update(ctx context.Context, id string, name, color string) error
	Delete(ctx context.Context, id string) error
}

// ListingRepository defines persistence operations for the shared
// jobs/services pool. Create returns domain.ErrCodeExists when the unique
// code index rejects the document.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// ListByType returns all listings of one pool, recency-ordered unless
	// opts overrides the field.
	ListByType(ctx context.Context, t domain.ListingType, opts ListOptions) ([]*domain.Listing, error)
	// ListByCategory is the single-equality-predicate query with default
	// recency ordering.
	ListByCategory(ctx context.Context, t domain.ListingType, categoryID string) ([]*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository defines persistence operations for bookmarks.
// Add returns domain.ErrFavoriteExists when the compound unique index
// detects a duplicate; callers treat that as an idempotent no-op.
type FavoriteRepository interface {
	Add(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error)
	Remove(ctx context.Context, username, itemID string, itemType domain.ListingType) error
	ListByUser(ctx context.Context, username string) ([]*domain.Favorite, error)
}
