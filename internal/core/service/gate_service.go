package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// GateService is the single implementation of "is this user allowed".
// It is stateless across requests: session and profile are resolved
// fresh on every call, and every external-service failure resolves to
// a deny — never an allow.
type GateService struct {
	sessions ports.SessionStore
	profiles ports.ProfileRepository
	public   []string
	logger   zerolog.Logger
}

// NewGateService creates a GateService. public is the list of path
// prefixes reachable without any session (login, callback,
// unauthorized page, health, metrics).
func NewGateService(sessions ports.SessionStore, profiles ports.ProfileRepository, public []string, logger zerolog.Logger) *GateService {
	return &GateService{
		sessions: sessions,
		profiles: profiles,
		public:   public,
		logger:   logger,
	}
}

// Decide evaluates the gate decision table in order:
//
//  1. public path                      → allow, no session check
//  2. no valid session                 → login redirect
//  3. profile missing or fetch error   → unauthorized redirect
//  4. not authorized, or blocked       → unauthorized redirect
//     (reason=blocked when blocked)
//  5. otherwise                        → allow
func (g *GateService) Decide(ctx context.Context, in ports.DecideInput) ports.GateResult {
	for _, prefix := range g.public {
		if strings.HasPrefix(in.Path, prefix) {
			return ports.GateResult{Decision: ports.DecisionAllow}
		}
	}

	// Bearer-token API clients: subject already verified by transport.
	if in.APIUserID != "" {
		return g.checkProfile(ctx, in.APIUserID, nil)
	}

	if in.SessionID == "" {
		return ports.GateResult{Decision: ports.DecisionLogin}
	}

	sess, err := g.sessions.Get(ctx, in.SessionID)
	if err != nil {
		// Any store failure counts as "no session"; access still fails
		// closed because the outcome is a deny.
		if !errors.Is(err, domain.ErrSessionNotFound) {
			g.logger.Warn().Err(err).Str("path", in.Path).Msg("session lookup failed, denying")
		}
		return ports.GateResult{Decision: ports.DecisionLogin}
	}

	return g.checkProfile(ctx, sess.UserID, &sess)
}

func (g *GateService) checkProfile(ctx context.Context, userID string, sess *domain.Session) ports.GateResult {
	profile, err := g.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			g.logger.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed, denying")
		}
		return ports.GateResult{Decision: ports.DecisionUnauthorized, Session: sess}
	}

	if profile.IsBlocked {
		return ports.GateResult{
			Decision: ports.DecisionUnauthorized,
			Reason:   "blocked",
			Session:  sess,
			Profile:  profile,
		}
	}
	if !profile.Authorized {
		return ports.GateResult{Decision: ports.DecisionUnauthorized, Session: sess, Profile: profile}
	}

	return ports.GateResult{Decision: ports.DecisionAllow, Session: sess, Profile: profile}
}
