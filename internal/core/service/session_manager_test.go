package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

type memSessionStore struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{data: make(map[string]string)}
}

func (s *memSessionStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return v, nil
}

func (s *memSessionStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.sets++
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *memSessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func testUser(role string) *domain.User {
	return &domain.User{ID: "u1", Username: "mario", Role: role}
}

func newTestSessionManager(store ports.SessionStore) *SessionManager {
	return NewSessionManager(store, testLogger())
}

func TestSessionManager_SaveAndRead(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	ctx := context.Background()

	if err := m.Save(ctx, "tok1", testUser(domain.RoleClient)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if got := m.Token(ctx, "tok1"); got != "tok1" {
		t.Fatalf("Token = %q, want tok1", got)
	}
	u := m.User(ctx, "tok1")
	if u == nil || u.Username != "mario" {
		t.Fatalf("User = %+v, want mario", u)
	}
	if !m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("expected authenticated session")
	}
	if !m.IsClient(ctx, "tok1") || m.IsAdmin(ctx, "tok1") {
		t.Fatal("expected client role, not admin")
	}
}

func TestSessionManager_UnknownTokenReadsAsNoSession(t *testing.T) {
	m := newTestSessionManager(newMemSessionStore())
	ctx := context.Background()

	if m.IsAuthenticated(ctx, "missing") {
		t.Fatal("unknown token must not authenticate")
	}
	if m.Token(ctx, "missing") != "" {
		t.Fatal("unknown token must yield empty token")
	}
	if m.User(ctx, "missing") != nil {
		t.Fatal("unknown token must yield nil user")
	}
}

func TestSessionManager_RollingExpiry(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	if err := m.Save(ctx, "tok1", testUser(domain.RoleAdmin)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	m.now = func() time.Time { return base.Add(23*time.Hour + 59*time.Minute) }
	if !m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("session just under 24h must still be valid")
	}

	m.now = func() time.Time { return base.Add(24*time.Hour + time.Minute) }
	if m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("session past 24h must be invalid")
	}
	if store.len() != 0 {
		t.Fatalf("expired session must be purged, %d keys remain", store.len())
	}
}

func TestSessionManager_RefreshExtendsExpiry(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	if err := m.Save(ctx, "tok1", testUser(domain.RoleClient)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	m.now = func() time.Time { return base.Add(23 * time.Hour) }
	if err := m.Refresh(ctx, "tok1"); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	// 25h after login but only 2h after the refresh.
	m.now = func() time.Time { return base.Add(25 * time.Hour) }
	if !m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("refreshed session must survive past the original deadline")
	}
}

func TestSessionManager_RefreshMissingSessionIsNoop(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)

	if err := m.Refresh(context.Background(), "ghost"); err != nil {
		t.Fatalf("Refresh of missing session returned error: %v", err)
	}
	if store.len() != 0 {
		t.Fatal("refresh of a missing session must not write keys")
	}
}

func TestSessionManager_CorruptBlobPurged(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	ctx := context.Background()

	store.data[sessionKeyPrefix+"tok1"] = "{not json"
	store.data[tokenKeyPrefix+"tok1"] = "tok1"

	if m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("corrupt blob must not authenticate")
	}
	if store.len() != 0 {
		t.Fatalf("corrupt session must be purged, %d keys remain", store.len())
	}
}

func TestSessionManager_ClearRemovesBothKeys(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	ctx := context.Background()

	if err := m.Save(ctx, "tok1", testUser(domain.RoleClient)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := m.Clear(ctx, "tok1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if store.len() != 0 {
		t.Fatalf("Clear must remove both keys, %d remain", store.len())
	}
	if m.IsAuthenticated(ctx, "tok1") {
		t.Fatal("cleared session must not authenticate")
	}
}

func TestSessionManager_TouchCoalescesRefreshes(t *testing.T) {
	store := newMemSessionStore()
	m := newTestSessionManager(store)
	m.debounce = 30 * time.Millisecond
	ctx := context.Background()

	if err := m.Save(ctx, "tok1", testUser(domain.RoleClient)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	store.mu.Lock()
	store.sets = 0
	store.mu.Unlock()

	// A burst of activity inside the window must collapse to one refresh.
	for i := 0; i < 10; i++ {
		m.Touch("tok1")
		time.Sleep(2 * time.Millisecond)
	}

	deadline := time.Now().Add(time.Second)
	for {
		store.mu.Lock()
		sets := store.sets
		store.mu.Unlock()
		if sets > 0 {
			if sets != 2 { // one refresh writes both keys
				t.Fatalf("expected exactly one refresh (2 writes), got %d writes", sets)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced refresh never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
	m.Close()
}

func TestDecodeTokenPayload(t *testing.T) {
	claims := jwt.MapClaims{"username": "mario", "exp": float64(1893456000)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	payload := DecodeTokenPayload(token)
	if payload == nil {
		t.Fatal("expected payload, got nil")
	}
	if payload["username"] != "mario" {
		t.Fatalf("username claim = %v, want mario", payload["username"])
	}

	for _, bad := range []string{"", "a.b", "a.b.c.d", "x.!!!.z", "x." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".z"} {
		if DecodeTokenPayload(bad) != nil {
			t.Fatalf("DecodeTokenPayload(%q) must be nil", bad)
		}
	}
}

func TestIsTokenExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mkToken := func(exp time.Time) string {
		body, _ := json.Marshal(map[string]any{"exp": exp.Unix()})
		return "h." + base64.RawURLEncoding.EncodeToString(body) + ".s"
	}

	if IsTokenExpired(mkToken(now.Add(time.Hour)), now) {
		t.Fatal("future exp must not read as expired")
	}
	if !IsTokenExpired(mkToken(now.Add(-time.Hour)), now) {
		t.Fatal("past exp must read as expired")
	}
	if !IsTokenExpired("garbage", now) {
		t.Fatal("undecodable token counts as expired")
	}
	noExp := "h." + base64.RawURLEncoding.EncodeToString([]byte(`{"username":"mario"}`)) + ".s"
	if !IsTokenExpired(noExp, now) {
		t.Fatal("token without exp counts as expired")
	}
}
