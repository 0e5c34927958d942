package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// ProfileRepository defines persistence operations for authorization profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	List(ctx context.Context) ([]*domain.Profile, error)
}
