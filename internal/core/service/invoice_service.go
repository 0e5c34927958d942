package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type InvoiceService struct {
	repo      ports.InvoiceRepository
	products  ports.ProductRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, products ports.ProductRepository, customers ports.CustomerRepository, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, products: products, customers: customers, logger: logger}
}

// Create issues an invoice: resolves every line against the catalog,
// decrements stock in the named warehouse, computes totals, persists.
// Stock that was already decremented is restored if a later line fails.
func (s *InvoiceService) Create(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyInvoice
	}
	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	lines := make([]domain.InvoiceLine, 0, len(in.Lines))
	var taken []domain.InvoiceLine
	rollback := func() {
		for _, l := range taken {
			if err := s.products.AdjustStock(ctx, l.ProductID, in.WarehouseID, l.Quantity); err != nil {
				s.logger.Error().Err(err).Str("product_id", l.ProductID).Msg("stock rollback failed")
			}
		}
	}

	for _, li := range in.Lines {
		p, err := s.products.FindByID(ctx, li.ProductID)
		if err != nil {
			rollback()
			return nil, err
		}
		if p.QuantityIn(in.WarehouseID) < li.Quantity {
			rollback()
			return nil, domain.ErrInsufficientStock
		}
		if err := s.products.AdjustStock(ctx, p.ID, in.WarehouseID, -li.Quantity); err != nil {
			rollback()
			return nil, err
		}
		line := domain.InvoiceLine{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  li.Quantity,
			UnitPrice: p.UnitPrice,
		}
		taken = append(taken, line)
		lines = append(lines, line)
	}

	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		rollback()
		return nil, err
	}

	inv := &domain.Invoice{
		ID:          uuid.NewString(),
		Number:      number,
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		Lines:       lines,
		IssuedBy:    in.IssuedBy,
		IssuedAt:    time.Now().UTC(),
	}
	inv.ComputeTotals()

	if err := s.repo.Create(ctx, inv); err != nil {
		rollback()
		s.logger.Error().Err(err).Str("number", number).Msg("failed to create invoice")
		return nil, err
	}

	s.logger.Info().Str("invoice_id", inv.ID).Str("number", number).Int64("total", inv.Total).Msg("invoice issued")
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, filter ports.ListInvoicesFilter) (*ports.ListInvoicesResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListInvoicesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
