package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// AdminService mutates authorization profiles: approve, block, role
// changes. Blocking also destroys the user's live sessions so the
// revocation takes effect immediately, not just on session expiry.
type AdminService struct {
	profiles ports.ProfileRepository
	sessions ports.SessionStore
	monitor  ports.SessionMonitor
	logger   zerolog.Logger
}

func NewAdminService(profiles ports.ProfileRepository, sessions ports.SessionStore, monitor ports.SessionMonitor, logger zerolog.Logger) *AdminService {
	return &AdminService{
		profiles: profiles,
		sessions: sessions,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *AdminService) Authorize(ctx context.Context, userID string) error {
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.Authorized = true
	})
}

func (s *AdminService) Unblock(ctx context.Context, userID string) error {
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.IsBlocked = false
	})
}

func (s *AdminService) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	return s.mutate(ctx, userID, func(p *domain.Profile) {
		p.Role = role
	})
}

// Block revokes access and kills every live session of the user.
func (s *AdminService) Block(ctx context.Context, userID string) error {
	if err := s.mutate(ctx, userID, func(p *domain.Profile) {
		p.IsBlocked = true
	}); err != nil {
		return err
	}

	ids, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		// The profile flag already denies at the gate; session cleanup
		// failing is logged, not fatal.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to delete sessions of blocked user")
		return nil
	}
	for _, id := range ids {
		s.monitor.Forget(id)
	}
	s.logger.Info().Str("user_id", userID).Int("sessions_killed", len(ids)).Msg("user blocked")
	return nil
}

func (s *AdminService) mutate(ctx context.Context, userID string, apply func(*domain.Profile)) error {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	apply(p)
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
