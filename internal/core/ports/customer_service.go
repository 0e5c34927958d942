package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// CustomerInput carries the fields of a customer record.
type CustomerInput struct {
	RUT       string
	Name      string
	Email     string
	Phone     string
	Street    string
	RegionID  int
	CommuneID int
}

// ListCustomersResult is returned by List.
type ListCustomersResult struct {
	Items      []*domain.Customer
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CustomerService defines use-case operations for customer records.
type CustomerService interface {
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, id string, in CustomerInput) (*domain.Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) (*ListCustomersResult, error)
}
