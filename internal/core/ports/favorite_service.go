package ports

import (
	"context"

	"github.com/bacheca/board-api/internal/core/domain"
)

// FavoriteItem joins a bookmark with its listing for display.
type FavoriteItem struct {
	ItemID   string
	ItemType domain.ListingType
	Listing  *domain.Listing // nil when the listing has been deleted
}

// FavoriteService maintains the per-user favorites set. The visible state
// only changes after the backing store confirms, and an empty username is
// rejected with domain.ErrUnauthenticated.
type FavoriteService interface {
	// Toggle flips membership and reports the resulting state (true =
	// now a favorite).
	Toggle(ctx context.Context, username, itemID string, itemType domain.ListingType) (bool, error)
	IsFavorite(username, itemID string, itemType domain.ListingType) bool
	// Rehydrate loads the user's favorites from the store into the local
	// set, typically on session start.
	Rehydrate(ctx context.Context, username string) error
	List(ctx context.Context, username string) ([]FavoriteItem, error)
	Count(username string) int
	// Forget drops the user's local set, typically on logout.
	Forget(username string)
}
