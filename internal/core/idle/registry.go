package idle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/ports"
)

// Registry owns one Monitor per live session and implements
// ports.SessionMonitor. Monitors are created at login, replaced on
// re-login, and dropped when their session ends.
type Registry struct {
	cfg     Config
	clock   Clock
	signOut SignOutFunc
	log     zerolog.Logger

	mu       sync.Mutex
	monitors map[string]*Monitor
	closed   bool
}

// NewRegistry creates a Registry. signOut is invoked exactly once for a
// session the moment its monitor expires or is explicitly terminated.
func NewRegistry(cfg Config, clock Clock, signOut SignOutFunc, log zerolog.Logger) *Registry {
	if clock == nil {
		clock = RealClock()
	}
	return &Registry{
		cfg:      cfg.withDefaults(),
		clock:    clock,
		signOut:  signOut,
		log:      log,
		monitors: make(map[string]*Monitor),
	}
}

// Track starts idle tracking for sessionID, replacing any previous
// monitor for the same session.
func (r *Registry) Track(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if old, ok := r.monitors[sessionID]; ok {
		old.Close()
	}
	r.monitors[sessionID] = newMonitor(sessionID, r.cfg, r.clock, r.expired, r.log)
}

// expired is handed to every monitor as its SignOutFunc: drop the
// registry entry first, then run the real sign-out.
func (r *Registry) expired(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.monitors, sessionID)
	r.mu.Unlock()
	return r.signOut(ctx, sessionID)
}

// Activity records activity for sessionID. Sessions unknown to the
// registry (e.g. created before a process restart) start being tracked
// from this event.
func (r *Registry) Activity(sessionID string) {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	r.mu.Unlock()
	if !ok {
		r.Track(sessionID)
		return
	}
	m.Activity()
}

// State implements ports.SessionMonitor.
func (r *Registry) State(sessionID string) (ports.SessionState, bool) {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	r.mu.Unlock()
	if !ok {
		return ports.SessionState{}, false
	}
	st, secs := m.State()
	return ports.SessionState{
		Warning:          st == StateWarning,
		SecondsRemaining: secs,
	}, true
}

// Extend implements ports.SessionMonitor.
func (r *Registry) Extend(sessionID string) bool {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return m.Extend()
}

// Terminate force-logs-out sessionID.
func (r *Registry) Terminate(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	delete(r.monitors, sessionID)
	r.mu.Unlock()
	if !ok {
		// Not tracked; still run sign-out so the session is destroyed.
		return r.signOut(ctx, sessionID)
	}
	return m.Terminate(ctx)
}

// Forget stops tracking sessionID without signing out.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.monitors[sessionID]; ok {
		m.Close()
		delete(r.monitors, sessionID)
	}
}

// Len reports how many sessions are currently tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.monitors)
}

// Close tears down every monitor. No timer callback fires afterwards
// and no sign-outs are triggered.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, m := range r.monitors {
		m.Close()
		delete(r.monitors, id)
	}
}
