package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// FavoriteService keeps a per-user membership set in memory, rehydrated from
// the store, so card state renders without a round trip per item. The set
// only mutates after the backing operation confirms; a failed store call
// leaves the visible state untouched.
type FavoriteService struct {
	repo     ports.FavoriteRepository
	listings ports.ListingRepository
	log      zerolog.Logger

	mu   sync.Mutex
	sets map[string]map[string]struct{} // username -> favorite keys
}

func NewFavoriteService(repo ports.FavoriteRepository, listings ports.ListingRepository, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		repo:     repo,
		listings: listings,
		log:      log,
		sets:     make(map[string]map[string]struct{}),
	}
}

// Rehydrate replaces the user's local set with the store's view. Called on
// session start and lazily before the first toggle.
func (s *FavoriteService) Rehydrate(ctx context.Context, username string) error {
	if username == "" {
		return domain.ErrUnauthenticated
	}

	favs, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return err
	}

	set := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		set[domain.FavoriteKey(f.ItemID, f.ItemType)] = struct{}{}
	}

	s.mu.Lock()
	s.sets[username] = set
	s.mu.Unlock()
	return nil
}

// Toggle flips membership and reports the resulting state. The add path is
// idempotent: a duplicate detected by the store's unique index counts as
// success.
func (s *FavoriteService) Toggle(ctx context.Context, username, itemID string, itemType domain.ListingType) (bool, error) {
	if username == "" {
		return false, domain.ErrUnauthenticated
	}
	if err := s.ensureLoaded(ctx, username); err != nil {
		return false, err
	}

	key := domain.FavoriteKey(itemID, itemType)

	if s.has(username, key) {
		if err := s.repo.Remove(ctx, username, itemID, itemType); err != nil {
			return true, err
		}
		s.drop(username, key)
		s.log.Debug().Str("username", username).Str("item", key).Msg("favorite removed")
		return false, nil
	}

	_, err := s.repo.Add(ctx, &domain.Favorite{
		Username:  username,
		ItemID:    itemID,
		ItemType:  itemType,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, domain.ErrFavoriteExists) {
		return false, err
	}
	s.put(username, key)
	s.log.Debug().Str("username", username).Str("item", key).Msg("favorite added")
	return true, nil
}

// IsFavorite is an O(1) check against the local set. Unknown users (not yet
// rehydrated) read as "not a favorite".
func (s *FavoriteService) IsFavorite(username, itemID string, itemType domain.ListingType) bool {
	return s.has(username, domain.FavoriteKey(itemID, itemType))
}

// Count returns the size of the user's local set.
func (s *FavoriteService) Count(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets[username])
}

// List resolves the user's favorites to their listings. Bookmarks whose
// listing has since been deleted are returned with a nil Listing.
func (s *FavoriteService) List(ctx context.Context, username string) ([]ports.FavoriteItem, error) {
	if username == "" {
		return nil, domain.ErrUnauthenticated
	}

	favs, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	items := make([]ports.FavoriteItem, 0, len(favs))
	for _, f := range favs {
		item := ports.FavoriteItem{ItemID: f.ItemID, ItemType: f.ItemType}
		l, err := s.listings.FindByID(ctx, f.ItemID)
		if err == nil {
			item.Listing = l
		} else if !errors.Is(err, domain.ErrListingNotFound) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Forget drops the user's local set, e.g. on logout.
func (s *FavoriteService) Forget(username string) {
	s.mu.Lock()
	delete(s.sets, username)
	s.mu.Unlock()
}

func (s *FavoriteService) ensureLoaded(ctx context.Context, username string) error {
	s.mu.Lock()
	_, ok := s.sets[username]
	s.mu.Unlock()
	if ok {
		return nil
	}
	return s.Rehydrate(ctx, username)
}

func (s *FavoriteService) has(username, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sets[username][key]
	return ok
}

func (s *FavoriteService) put(username, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets[username] == nil {
		s.sets[username] = make(map[string]struct{})
	}
	s.sets[username][key] = struct{}{}
}

func (s *FavoriteService) drop(username, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets[username], key)
}
