package ports

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by SessionStore.Get for absent keys so the
// manager can distinguish "no session" from a store failure.
var ErrKeyNotFound = errors.New("session store: key not found")

// SessionStore is the key/value persistence behind the session manager.
// Values are opaque strings; ttl bounds how long a key survives without a
// refresh rewriting it.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
