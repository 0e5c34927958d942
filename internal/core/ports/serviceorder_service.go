package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// CreateServiceOrderInput carries all data needed to open a service order.
type CreateServiceOrderInput struct {
	CustomerID   string
	Equipment    string
	SerialNumber string
	Problem      string
}

// UpdateOrderStatusInput advances a service order through its lifecycle.
type UpdateOrderStatusInput struct {
	Status   domain.ServiceOrderStatus
	Notes    string
	ByUserID string
}

// ListServiceOrdersResult is returned by List.
type ListServiceOrdersResult struct {
	Items      []*domain.ServiceOrder
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ServiceOrderService defines use-case operations for service orders.
type ServiceOrderService interface {
	Create(ctx context.Context, in CreateServiceOrderInput) (*domain.ServiceOrder, error)
	Get(ctx context.Context, id string) (*domain.ServiceOrder, error)
	List(ctx context.Context, filter ListServiceOrdersFilter) (*ListServiceOrdersResult, error)
	UpdateStatus(ctx context.Context, id string, in UpdateOrderStatusInput) (*domain.ServiceOrder, error)
	// Assign sets the responsible technician.
	Assign(ctx context.Context, id, technicianID string) (*domain.ServiceOrder, error)
	// SetDiagnosis records the technician's diagnosis text.
	SetDiagnosis(ctx context.Context, id, diagnosis string) (*domain.ServiceOrder, error)
}
