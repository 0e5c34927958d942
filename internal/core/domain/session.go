package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record kept for an authenticated browser
// visitor. ID is an opaque identifier carried in the session cookie; the
// record itself lives in the session store with a TTL matching ExpiresAt.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at instant now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Identity is the authenticated principal returned by the identity
// provider after a completed login flow.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	ExpiresAt time.Time
}
