package ports

import (
	"context"

	"github.com/bacheca/board-api/internal/core/domain"
)

// AuthService authenticates users and manages accounts.
// Login takes the client-side SHA-256 digest of the password, never the
// plaintext.
type AuthService interface {
	Login(ctx context.Context, username, passwordHash string) (string, *domain.User, error)
	CreateUser(ctx context.Context, username, passwordHash, email, role string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id, username, role string) error
	DeleteUser(ctx context.Context, id string) error
}

// SessionManager owns bearer sessions with a rolling 24h expiry.
//
// Reads are fail-closed: absence, expiry, and store or parse failures all
// read as "no session" (nil / false), never as an error the caller must
// handle. Reading an expired session purges it first.
type SessionManager interface {
	Save(ctx context.Context, token string, user *domain.User) error
	Token(ctx context.Context, token string) string
	User(ctx context.Context, token string) *domain.User
	IsAuthenticated(ctx context.Context, token string) bool
	IsAdmin(ctx context.Context, token string) bool
	IsClient(ctx context.Context, token string) bool
	Refresh(ctx context.Context, token string) error
	// Touch signals user activity; refreshes are coalesced to at most one
	// per quiet window.
	Touch(token string)
	Clear(ctx context.Context, token string) error
}
