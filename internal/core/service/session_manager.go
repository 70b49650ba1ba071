package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// Storage key prefixes; one pair of keys per session, keyed by bearer token.
const (
	tokenKeyPrefix   = "bacheca_auth_token:"
	sessionKeyPrefix = "bacheca_user_data:"
)

const defaultTouchDebounce = 5 * time.Second

// SessionManager keeps bearer sessions in a SessionStore with a rolling
// 24-hour expiry. Expiry is evaluated in code on every read (the store TTL
// is only a backstop), so an expired session is purged the moment anything
// looks at it. Activity-driven refreshes are debounced per token: a burst
// of Touch calls produces at most one Refresh per quiet window.
type SessionManager struct {
	store    ports.SessionStore
	log      zerolog.Logger
	now      func() time.Time
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewSessionManager(store ports.SessionStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:    store,
		log:      log,
		now:      time.Now,
		debounce: defaultTouchDebounce,
		timers:   make(map[string]*time.Timer),
	}
}

// SetTouchDebounce overrides the activity coalescing window. Zero or
// negative values are ignored.
func (m *SessionManager) SetTouchDebounce(d time.Duration) {
	if d > 0 {
		m.debounce = d
	}
}

// Save persists the token and the session blob. A storage failure is
// returned to the caller, never a panic.
func (m *SessionManager) Save(ctx context.Context, token string, user *domain.User) error {
	sess := domain.Session{Token: token, User: user, Timestamp: m.now().UTC()}
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, tokenKeyPrefix+token, token, domain.SessionTTL); err != nil {
		return err
	}
	return m.store.Set(ctx, sessionKeyPrefix+token, string(blob), domain.SessionTTL)
}

// session reads and validates the stored blob. Every failure mode (absent
// key, store error, corrupt JSON, expired timestamp) reads as nil.
func (m *SessionManager) session(ctx context.Context, token string) *domain.Session {
	if token == "" {
		return nil
	}

	raw, err := m.store.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if err != ports.ErrKeyNotFound {
			m.log.Warn().Err(err).Msg("session read failed, treating as unauthenticated")
		}
		return nil
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		m.log.Warn().Err(err).Msg("corrupt session blob, purging")
		_ = m.purge(ctx, token)
		return nil
	}

	if sess.Expired(m.now()) {
		if err := m.purge(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("failed to purge expired session")
		}
		return nil
	}
	return &sess
}

// Token returns the stored bearer token, or "" when the session is absent
// or expired.
func (m *SessionManager) Token(ctx context.Context, token string) string {
	if m.session(ctx, token) == nil {
		return ""
	}
	stored, err := m.store.Get(ctx, tokenKeyPrefix+token)
	if err != nil {
		return ""
	}
	return stored
}

// User returns the cached profile, or nil when the session is absent or
// expired.
func (m *SessionManager) User(ctx context.Context, token string) *domain.User {
	sess := m.session(ctx, token)
	if sess == nil {
		return nil
	}
	return sess.User
}

func (m *SessionManager) IsAuthenticated(ctx context.Context, token string) bool {
	sess := m.session(ctx, token)
	return sess != nil && sess.Token != "" && sess.User != nil
}

func (m *SessionManager) IsAdmin(ctx context.Context, token string) bool {
	u := m.User(ctx, token)
	return u != nil && u.Role == domain.RoleAdmin
}

func (m *SessionManager) IsClient(ctx context.Context, token string) bool {
	u := m.User(ctx, token)
	return u != nil && u.Role == domain.RoleClient
}

// Refresh rewrites the session timestamp to now, extending expiry without
// re-authenticating. Refreshing a missing session is a no-op.
func (m *SessionManager) Refresh(ctx context.Context, token string) error {
	sess := m.session(ctx, token)
	if sess == nil {
		return nil
	}

	sess.Timestamp = m.now().UTC()
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, sessionKeyPrefix+token, string(blob), domain.SessionTTL); err != nil {
		return err
	}
	return m.store.Set(ctx, tokenKeyPrefix+token, sess.Token, domain.SessionTTL)
}

// Touch registers user activity. The refresh runs after the debounce window
// elapses with no further activity; each call restarts the single pending
// timer for the token, so bursts coalesce into one store write.
func (m *SessionManager) Touch(token string) {
	if token == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.timers[token]; ok {
		t.Reset(m.debounce)
		return
	}
	m.timers[token] = time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		delete(m.timers, token)
		m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if !m.IsAuthenticated(ctx, token) {
			return
		}
		if err := m.Refresh(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("debounced session refresh failed")
		}
	})
}

// Clear removes both session keys and cancels any pending refresh.
func (m *SessionManager) Clear(ctx context.Context, token string) error {
	m.mu.Lock()
	if t, ok := m.timers[token]; ok {
		t.Stop()
		delete(m.timers, token)
	}
	m.mu.Unlock()

	return m.purge(ctx, token)
}

// Close stops all pending refresh timers. Used at shutdown.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, t := range m.timers {
		t.Stop()
		delete(m.timers, token)
	}
}

func (m *SessionManager) purge(ctx context.Context, token string) error {
	return m.store.Delete(ctx, tokenKeyPrefix+token, sessionKeyPrefix+token)
}

// DecodeTokenPayload inspects the middle segment of a three-part
// dot-delimited token without verifying the signature. Malformed input
// yields nil, never a panic or error.
func DecodeTokenPayload(token string) map[string]any {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

// IsTokenExpired checks the embedded exp claim. Tokens that cannot be
// decoded, or that carry no exp claim, count as expired.
func IsTokenExpired(token string, now time.Time) bool {
	payload := DecodeTokenPayload(token)
	if payload == nil {
		return true
	}
	exp, ok := payload["exp"].(float64)
	if !ok {
		return true
	}
	return now.Unix() >= int64(exp)
}
