package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// WarehouseRepository defines persistence operations for warehouses.
type WarehouseRepository interface {
	Create(ctx context.Context, w *domain.Warehouse) error
	FindByID(ctx context.Context, id string) (*domain.Warehouse, error)
	FindByCode(ctx context.Context, code string) (*domain.Warehouse, error)
	Update(ctx context.Context, w *domain.Warehouse) error
	List(ctx context.Context) ([]*domain.Warehouse, error)
}

// WarehouseInput carries the fields of a warehouse.
type WarehouseInput struct {
	Code      string
	Name      string
	Street    string
	RegionID  int
	CommuneID int
}

// WarehouseService defines use-case operations for warehouses.
type WarehouseService interface {
	Create(ctx context.Context, in WarehouseInput) (*domain.Warehouse, error)
	Get(ctx context.Context, id string) (*domain.Warehouse, error)
	Update(ctx context.Context, id string, in WarehouseInput) (*domain.Warehouse, error)
	List(ctx context.Context) ([]*domain.Warehouse, error)
	Deactivate(ctx context.Context, id string) error
}
