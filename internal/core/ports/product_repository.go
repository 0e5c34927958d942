package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// ListProductsFilter carries query parameters for listing products.
type ListProductsFilter struct {
	Category string // optional: exact category match
	Search   string // optional: partial match on sku or name
	Active   *bool  // optional: filter by active flag
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// AdjustStock atomically adds delta (may be negative) to the
	// product's quantity in the given warehouse.
	AdjustStock(ctx context.Context, productID, warehouseID string, delta int64) error
}
