package ports

import (
	"context"
	"time"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// ListInvoicesFilter carries query parameters for listing invoices.
type ListInvoicesFilter struct {
	CustomerID string    // optional
	DateFrom   time.Time // optional: issued_at >= DateFrom
	DateTo     time.Time // optional: issued_at <= DateTo
	Page       int       // 1-based
	Limit      int       // capped at 100 by service
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	FindByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListInvoicesFilter) ([]*domain.Invoice, int64, error)
	// NextNumber reserves and returns the next sequential invoice number.
	NextNumber(ctx context.Context) (string, error)
}
