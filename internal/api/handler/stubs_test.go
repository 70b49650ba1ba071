package handler

import (
	"context"
	"io"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// Hand-written stubs for the service ports. Only the functions a test
// assigns are callable; the rest panic, which is what we want when a
// handler calls something unexpected.

type stubAuthService struct {
	loginFn      func(ctx context.Context, username, passwordHash string) (string, *domain.User, error)
	createUserFn func(ctx context.Context, username, passwordHash, email, role string) (*domain.User, error)
	listUsersFn  func(ctx context.Context) ([]*domain.User, error)
	updateUserFn func(ctx context.Context, id, username, role string) error
	deleteUserFn func(ctx context.Context, id string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, passwordHash string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, passwordHash)
}

func (s *stubAuthService) CreateUser(ctx context.Context, username, passwordHash, email, role string) (*domain.User, error) {
	return s.createUserFn(ctx, username, passwordHash, email, role)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAuthService) UpdateUser(ctx context.Context, id, username, role string) error {
	return s.updateUserFn(ctx, id, username, role)
}

func (s *stubAuthService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUserFn(ctx, id)
}

type stubSessionManager struct {
	sessions map[string]*domain.User
	saveErr  error
	cleared  []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]*domain.User)}
}

func (s *stubSessionManager) Save(_ context.Context, token string, user *domain.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[token] = user
	return nil
}

func (s *stubSessionManager) Token(_ context.Context, token string) string {
	if _, ok := s.sessions[token]; ok {
		return token
	}
	return ""
}

func (s *stubSessionManager) User(_ context.Context, token string) *domain.User {
	return s.sessions[token]
}

func (s *stubSessionManager) IsAuthenticated(_ context.Context, token string) bool {
	return s.sessions[token] != nil
}

func (s *stubSessionManager) IsAdmin(ctx context.Context, token string) bool {
	u := s.User(ctx, token)
	return u != nil && u.Role == domain.RoleAdmin
}

func (s *stubSessionManager) IsClient(ctx context.Context, token string) bool {
	u := s.User(ctx, token)
	return u != nil && u.Role == domain.RoleClient
}

func (s *stubSessionManager) Refresh(context.Context, string) error { return nil }
func (s *stubSessionManager) Touch(string)                          {}

func (s *stubSessionManager) Clear(_ context.Context, token string) error {
	delete(s.sessions, token)
	s.cleared = append(s.cleared, token)
	return nil
}

type stubFavoriteService struct {
	toggleFn    func(ctx context.Context, username, itemID string, itemType domain.ListingType) (bool, error)
	listFn      func(ctx context.Context, username string) ([]ports.FavoriteItem, error)
	rehydrated  []string
	forgotten   []string
	countResult int
}

func (s *stubFavoriteService) Toggle(ctx context.Context, username, itemID string, itemType domain.ListingType) (bool, error) {
	return s.toggleFn(ctx, username, itemID, itemType)
}

func (s *stubFavoriteService) IsFavorite(string, string, domain.ListingType) bool { return false }

func (s *stubFavoriteService) Rehydrate(_ context.Context, username string) error {
	s.rehydrated = append(s.rehydrated, username)
	return nil
}

func (s *stubFavoriteService) List(ctx context.Context, username string) ([]ports.FavoriteItem, error) {
	return s.listFn(ctx, username)
}

func (s *stubFavoriteService) Count(string) int { return s.countResult }

func (s *stubFavoriteService) Forget(username string) {
	s.forgotten = append(s.forgotten, username)
}

type stubListingService struct {
	browseFn func(ctx context.Context, t domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error)
	getFn    func(ctx context.Context, id string) (*domain.Listing, error)
	createFn func(ctx context.Context, input ports.ListingInput) (*domain.Listing, error)
	updateFn func(ctx context.Context, id string, input ports.ListingInput) error
	deleteFn func(ctx context.Context, id string) error
	catsFn   func(ctx context.Context) ([]*domain.Category, error)
}

func (s *stubListingService) Browse(ctx context.Context, t domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error) {
	return s.browseFn(ctx, t, spec)
}

func (s *stubListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.getFn(ctx, id)
}

func (s *stubListingService) Create(ctx context.Context, input ports.ListingInput) (*domain.Listing, error) {
	return s.createFn(ctx, input)
}

func (s *stubListingService) Update(ctx context.Context, id string, input ports.ListingInput) error {
	return s.updateFn(ctx, id, input)
}

func (s *stubListingService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubListingService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.catsFn(ctx)
}

func (s *stubListingService) CreateCategory(context.Context, string, string) (*domain.Category, error) {
	return nil, nil
}

func (s *stubListingService) UpdateCategory(context.Context, string, string, string) error {
	return nil
}

func (s *stubListingService) DeleteCategory(context.Context, string) error { return nil }

type stubNewsletterService struct {
	sendFn func(ctx context.Context, input ports.NewsletterInput) (*ports.NewsletterResult, error)
}

func (s *stubNewsletterService) Send(ctx context.Context, input ports.NewsletterInput) (*ports.NewsletterResult, error) {
	return s.sendFn(ctx, input)
}

type stubUploadService struct {
	storeFn func(ctx context.Context, r io.Reader, declaredSize int64) (*ports.UploadResult, error)
}

func (s *stubUploadService) Store(ctx context.Context, r io.Reader, declaredSize int64) (*ports.UploadResult, error) {
	return s.storeFn(ctx, r, declaredSize)
}
