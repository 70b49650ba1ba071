package domain

import "time"

// SessionTTL is the rolling validity window: a session whose timestamp is
// older than this is invalid and gets purged on the next read.
const SessionTTL = 24 * time.Hour

// Session is the persisted proof of authentication plus the cached user
// profile. Timestamp is rewritten on every refresh, extending expiry.
type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"userData"`
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the session is past its rolling window at now.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.Timestamp) > SessionTTL
}
