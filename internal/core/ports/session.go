package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// SessionStore persists and retrieves cookie-backed sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every live session belonging to userID and
	// returns the ids that were removed.
	DeleteByUser(ctx context.Context, userID string) ([]string, error)
}

// StateStore keeps short-lived OAuth state → nonce pairs between the
// login redirect and the provider callback.
type StateStore interface {
	Save(ctx context.Context, state, nonce string) error
	// Take returns the nonce for state and deletes it, so a state value
	// can only be redeemed once.
	Take(ctx context.Context, state string) (string, error)
}

// SessionState is the idle-monitor view exposed to the warning UI.
type SessionState struct {
	Warning          bool `json:"warning"`
	SecondsRemaining int  `json:"seconds_remaining"`
}

// SessionMonitor tracks per-session idle state and enforces the
// warn-then-logout policy.
type SessionMonitor interface {
	// Track starts (or restarts) idle tracking for sessionID.
	Track(sessionID string)
	// Activity records user activity; ignored while the session is in
	// its warning window.
	Activity(sessionID string)
	// State reports the current idle state; ok is false when the
	// session is not tracked.
	State(sessionID string) (SessionState, bool)
	// Extend is the explicit "keep session active" action; it reports
	// whether the session was still alive to extend.
	Extend(sessionID string) bool
	// Terminate force-logs-out the session.
	Terminate(ctx context.Context, sessionID string) error
	// Forget stops tracking without signing out (used at teardown).
	Forget(sessionID string)
}
