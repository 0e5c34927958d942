package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// ListServiceOrdersFilter carries query parameters for listing service orders.
type ListServiceOrdersFilter struct {
	CustomerID   string // optional
	TechnicianID string // optional
	Status       string // optional
	Page         int    // 1-based
	Limit        int    // capped at 100 by service
}

// ServiceOrderRepository defines persistence operations for service orders.
type ServiceOrderRepository interface {
	Create(ctx context.Context, o *domain.ServiceOrder) error
	FindByID(ctx context.Context, id string) (*domain.ServiceOrder, error)
	Update(ctx context.Context, o *domain.ServiceOrder) error
	List(ctx context.Context, filter ListServiceOrdersFilter) ([]*domain.ServiceOrder, int64, error)
	// NextNumber reserves and returns the next sequential order number.
	NextNumber(ctx context.Context) (string, error)
}
