package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// AuthService implements login, callback, token login and sign-out.
type AuthService struct {
	provider   ports.IdentityProvider
	states     ports.StateStore
	sessions   ports.SessionStore
	profiles   ports.ProfileRepository
	monitor    ports.SessionMonitor
	jwtSecret  string
	tokenTTL   time.Duration
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	provider ports.IdentityProvider,
	states ports.StateStore,
	sessions ports.SessionStore,
	profiles ports.ProfileRepository,
	monitor ports.SessionMonitor,
	jwtSecret string,
	tokenTTL, sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	return &AuthService{
		provider:   provider,
		states:     states,
		sessions:   sessions,
		profiles:   profiles,
		monitor:    monitor,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// LoginURL starts a provider login flow. The state/nonce pair is cached
// server-side so the callback can verify it once.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	res, err := s.provider.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin login flow: %w", err)
	}
	if err := s.states.Save(ctx, res.State, res.Nonce); err != nil {
		return "", fmt.Errorf("save login state: %w", err)
	}
	return res.AuthURL, nil
}

// HandleCallback completes the provider flow and creates the session.
// On a first login the caller's Profile is auto-created with
// authorized=false; an admin must approve it before the gate lets the
// account through.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (*domain.Session, error) {
	nonce, err := s.states.Take(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown or replayed state", domain.ErrInvalidCredentials)
	}

	identity, err := s.provider.Exchange(ctx, code, nonce)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	if err := s.ensureProfile(ctx, identity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expires := now.Add(s.sessionTTL)
	if !identity.ExpiresAt.IsZero() && identity.ExpiresAt.Before(expires) {
		expires = identity.ExpiresAt
	}
	sess := domain.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.monitor.Track(sess.ID)
	s.logger.Info().Str("user_id", identity.UserID).Str("session_id", sess.ID).Msg("login completed")
	return &sess, nil
}

// ensureProfile creates the profile on first login and best-effort
// syncs the name fields on repeat logins.
func (s *AuthService) ensureProfile(ctx context.Context, id domain.Identity) error {
	existing, err := s.profiles.FindByUserID(ctx, id.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return fmt.Errorf("find profile: %w", err)
		}
		now := time.Now().UTC()
		p := &domain.Profile{
			UserID:     id.UserID,
			Email:      id.Email,
			FirstName:  id.FirstName,
			LastName:   id.LastName,
			Role:       domain.RoleViewer,
			Authorized: false,
			IsBlocked:  false,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.profiles.Create(ctx, p); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		s.logger.Info().Str("user_id", id.UserID).Msg("profile auto-created, pending authorization")
		return nil
	}

	if (id.FirstName != "" && id.FirstName != existing.FirstName) ||
		(id.LastName != "" && id.LastName != existing.LastName) {
		existing.FirstName = id.FirstName
		existing.LastName = id.LastName
		existing.UpdatedAt = time.Now().UTC()
		if err := s.profiles.Update(ctx, existing); err != nil {
			// Name sync is best-effort; the login proceeds.
			s.logger.Warn().Err(err).Str("user_id", id.UserID).Msg("profile name sync failed")
		}
	}
	return nil
}

// TokenLogin authenticates a local account and issues a bearer token
// for non-browser API clients.
func (s *AuthService) TokenLogin(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if profile.PasswordHash == "" {
		// Provider-backed account, no local password.
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if profile.IsBlocked {
		return "", nil, domain.ErrProfileBlocked
	}
	if !profile.Authorized {
		return "", nil, domain.ErrNotAuthorized
	}

	claims := jwt.MapClaims{
		"sub":   profile.UserID,
		"email": profile.Email,
		"role":  string(profile.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, profile, nil
}

// SignOut destroys the session record and stops its idle monitor. The
// monitor is always dropped; a store failure is returned so the caller
// can attach a logout_error marker, but local cleanup is never skipped.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	s.monitor.Forget(sessionID)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("session delete failed during sign-out")
		return err
	}
	return nil
}
