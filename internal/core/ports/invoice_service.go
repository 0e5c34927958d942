package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// InvoiceLineInput is one requested position on a new invoice.
type InvoiceLineInput struct {
	ProductID string
	Quantity  int64
}

// CreateInvoiceInput carries all data needed to issue an invoice.
// Stock for every line is decremented in WarehouseID; the whole
// creation fails when any line lacks stock.
type CreateInvoiceInput struct {
	CustomerID  string
	WarehouseID string
	Lines       []InvoiceLineInput
	IssuedBy    string // user id of the seller
}

// ListInvoicesResult is returned by List.
type ListInvoicesResult struct {
	Items      []*domain.Invoice
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// InvoiceService defines use-case operations for purchase invoices.
type InvoiceService interface {
	Create(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListInvoicesFilter) (*ListInvoicesResult, error)
}
