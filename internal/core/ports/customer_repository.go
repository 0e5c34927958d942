package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// ListCustomersFilter carries query parameters for listing customers.
type ListCustomersFilter struct {
	Search string // optional: partial match on rut or name
	Page   int    // 1-based
	Limit  int    // capped at 100 by service
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByRUT(ctx context.Context, rut string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
}
