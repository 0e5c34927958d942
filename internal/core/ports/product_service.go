package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Brand       string
	UnitPrice   int64
}

// UpdateProductInput carries the mutable fields of a product. Nil
// pointers mean "leave unchanged".
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Brand       *string
	UnitPrice   *int64
	Active      *bool
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations for the product catalog.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
	// AdjustStock moves stock in or out of a warehouse; delta may be
	// negative but may not take the on-hand quantity below zero.
	AdjustStock(ctx context.Context, productID, warehouseID string, delta int64) error
}
