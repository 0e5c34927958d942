// Package idle enforces automatic logout of inactive sessions. Each
// tracked session owns a small state machine (Active → Warning →
// Terminated): after Timeout−Warning without activity the session
// enters a warning window, and unless the user explicitly extends it,
// the session is signed out when the window closes.
package idle

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// State is the lifecycle state of one monitor instance.
type State int

const (
	// StateActive means activity is being tracked normally.
	StateActive State = iota
	// StateWarning means the warning window is open; activity is
	// ignored and only Extend returns the session to Active.
	StateWarning
	// StateTerminated is absorbing; the session has been signed out or
	// the monitor torn down.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWarning:
		return "warning"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// SignOutFunc destroys the session when the monitor expires it.
type SignOutFunc func(ctx context.Context, sessionID string) error

// Config holds the idle policy durations.
type Config struct {
	// Timeout is the total idle time after which the session is
	// terminated.
	Timeout time.Duration
	// Warning is the lead time before Timeout at which the warning
	// window opens. Must be shorter than Timeout.
	Warning time.Duration
	// Throttle bounds how often activity events may reset the timers.
	Throttle time.Duration
}

const (
	defaultTimeout  = 30 * time.Minute
	defaultWarning  = 2 * time.Minute
	defaultThrottle = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Warning <= 0 || c.Warning >= c.Timeout {
		c.Warning = defaultWarning
		if c.Warning >= c.Timeout {
			c.Warning = c.Timeout / 2
		}
	}
	if c.Throttle <= 0 {
		c.Throttle = defaultThrottle
	}
	return c
}

// Monitor tracks one session. All timer transitions run under a single
// mutex and always cancel the previous timer before arming the next
// one, so a stale callback can never fire after a reset.
type Monitor struct {
	sessionID string
	cfg       Config
	clock     Clock
	signOut   SignOutFunc
	log       zerolog.Logger
	limiter   *rate.Limiter

	mu          sync.Mutex
	state       State
	warnTimer   Timer
	expireTimer Timer
	// deadline is the authoritative sign-out instant. The remaining
	// seconds shown to the user are derived from it, never counted by
	// a second timer.
	deadline time.Time
}

func newMonitor(sessionID string, cfg Config, clock Clock, signOut SignOutFunc, log zerolog.Logger) *Monitor {
	m := &Monitor{
		sessionID: sessionID,
		cfg:       cfg,
		clock:     clock,
		signOut:   signOut,
		log:       log.With().Str("session_id", sessionID).Logger(),
		limiter:   rate.NewLimiter(rate.Every(cfg.Throttle), 1),
	}
	m.mu.Lock()
	m.armActiveLocked()
	m.mu.Unlock()
	return m
}

// armActiveLocked clears both timers and schedules the warning. Caller
// holds m.mu.
func (m *Monitor) armActiveLocked() {
	m.stopTimersLocked()
	m.state = StateActive
	m.deadline = time.Time{}
	m.warnTimer = m.clock.AfterFunc(m.cfg.Timeout-m.cfg.Warning, m.warn)
}

func (m *Monitor) stopTimersLocked() {
	if m.warnTimer != nil {
		m.warnTimer.Stop()
		m.warnTimer = nil
	}
	if m.expireTimer != nil {
		m.expireTimer.Stop()
		m.expireTimer = nil
	}
}

// Activity records user input. Resets are throttled, and activity
// during the warning window is deliberately ignored: the explicit
// Extend action is the only way out of Warning.
func (m *Monitor) Activity() {
	if !m.limiter.Allow() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return
	}
	m.armActiveLocked()
}

// warn is the warning-timer callback: Active → Warning.
func (m *Monitor) warn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return
	}
	m.stopTimersLocked()
	m.state = StateWarning
	m.deadline = m.clock.Now().Add(m.cfg.Warning)
	m.expireTimer = m.clock.AfterFunc(m.cfg.Warning, m.expire)
	m.log.Debug().Msg("session idle, warning window opened")
}

// expire is the logout-timer callback: Warning → Terminated.
func (m *Monitor) expire() {
	m.mu.Lock()
	if m.state != StateWarning {
		m.mu.Unlock()
		return
	}
	m.terminateLocked()
	m.mu.Unlock()

	m.log.Info().Msg("idle timeout reached, signing out session")
	if err := m.signOut(context.Background(), m.sessionID); err != nil {
		m.log.Error().Err(err).Msg("idle sign-out failed")
	}
}

// terminateLocked moves to Terminated and clears all timers. Caller
// holds m.mu and is responsible for invoking signOut at most once.
func (m *Monitor) terminateLocked() {
	m.stopTimersLocked()
	m.state = StateTerminated
}

// Extend is the explicit "keep session active" action. From Warning it
// cancels the pending logout and returns to Active with a fresh full
// duration; from Active it simply resets. It reports false once the
// monitor is terminated.
func (m *Monitor) Extend() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateTerminated {
		return false
	}
	m.armActiveLocked()
	return true
}

// Terminate force-logs-out the session (user clicked "log out now").
// Sign-out runs at most once across Terminate and timer expiry.
func (m *Monitor) Terminate(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateTerminated {
		m.mu.Unlock()
		return nil
	}
	m.terminateLocked()
	m.mu.Unlock()

	return m.signOut(ctx, m.sessionID)
}

// Close tears the monitor down without signing out: all timers are
// cancelled and no callback fires afterwards.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terminateLocked()
}

// State returns the current state and, while in Warning, the seconds
// remaining until sign-out. The value is derived from the deadline and
// never goes negative.
func (m *Monitor) State() (State, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWarning {
		return m.state, 0
	}
	secs := int(math.Ceil(m.deadline.Sub(m.clock.Now()).Seconds()))
	if secs < 0 {
		secs = 0
	}
	return m.state, secs
}
