package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type stubProductRepo struct {
	products  map[string]*domain.Product
	createErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	clone.Stock = append([]domain.StockEntry(nil), p.Stock...)
	return &clone, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, productID, warehouseID string, delta int64) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	for i, s := range p.Stock {
		if s.WarehouseID == warehouseID {
			if s.Quantity+delta < 0 {
				return domain.ErrInsufficientStock
			}
			p.Stock[i].Quantity += delta
			return nil
		}
	}
	if delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock = append(p.Stock, domain.StockEntry{WarehouseID: warehouseID, Quantity: delta})
	return nil
}

type stubInvoiceRepo struct {
	invoices  map[string]*domain.Invoice
	seq       int
	createErr error
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[string]*domain.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *inv
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *stubInvoiceRepo) FindByNumber(_ context.Context, number string) (*domain.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.Number == number {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *stubInvoiceRepo) List(_ context.Context, _ ports.ListInvoicesFilter) ([]*domain.Invoice, int64, error) {
	out := make([]*domain.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		clone := *inv
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) NextNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("F-%06d", r.seq), nil
}

func newInvoiceFixture() (*InvoiceService, *stubInvoiceRepo, *stubProductRepo, *stubCustomerRepo) {
	invoices := newStubInvoiceRepo()
	products := newStubProductRepo()
	customers := newStubCustomerRepo()
	customers.customers["c1"] = &domain.Customer{ID: "c1", RUT: "12345678-5", Name: "Comercial Andina"}
	products.products["p1"] = &domain.Product{
		ID: "p1", SKU: "NB-HP250", Name: "Notebook HP 250", UnitPrice: 450000,
		Stock: []domain.StockEntry{{WarehouseID: "w1", Quantity: 10}},
	}
	products.products["p2"] = &domain.Product{
		ID: "p2", SKU: "MO-LG24", Name: "Monitor LG 24", UnitPrice: 120000,
		Stock: []domain.StockEntry{{WarehouseID: "w1", Quantity: 2}},
	}
	svc := NewInvoiceService(invoices, products, customers, zerolog.Nop())
	return svc, invoices, products, customers
}

func TestInvoice_CreateComputesTotalsAndDecrementsStock(t *testing.T) {
	svc, _, products, _ := newInvoiceFixture()

	inv, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		CustomerID:  "c1",
		WarehouseID: "w1",
		Lines: []ports.InvoiceLineInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		IssuedBy: "u1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if inv.Net != 2*450000+120000 {
		t.Fatalf("unexpected net %d", inv.Net)
	}
	wantTax := int64(float64(inv.Net) * domain.IVARate)
	if inv.Tax != wantTax {
		t.Fatalf("expected tax %d, got %d", wantTax, inv.Tax)
	}
	if inv.Total != inv.Net+inv.Tax {
		t.Fatalf("total mismatch")
	}
	if inv.Number != "F-000001" {
		t.Fatalf("unexpected number %s", inv.Number)
	}

	if q := products.products["p1"].QuantityIn("w1"); q != 8 {
		t.Fatalf("expected p1 stock 8, got %d", q)
	}
	if q := products.products["p2"].QuantityIn("w1"); q != 1 {
		t.Fatalf("expected p2 stock 1, got %d", q)
	}
}

func TestInvoice_CreateInsufficientStockRollsBack(t *testing.T) {
	svc, invoices, products, _ := newInvoiceFixture()

	_, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		CustomerID:  "c1",
		WarehouseID: "w1",
		Lines: []ports.InvoiceLineInput{
			{ProductID: "p1", Quantity: 3}, // succeeds first
			{ProductID: "p2", Quantity: 5}, // only 2 on hand
		},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	// The p1 decrement must have been restored.
	if q := products.products["p1"].QuantityIn("w1"); q != 10 {
		t.Fatalf("expected p1 stock restored to 10, got %d", q)
	}
	if len(invoices.invoices) != 0 {
		t.Fatalf("no invoice must be persisted on failure")
	}
}

func TestInvoice_CreatePersistFailureRollsBack(t *testing.T) {
	svc, invoices, products, _ := newInvoiceFixture()
	invoices.createErr = errors.New("mongo down")

	_, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		CustomerID:  "c1",
		WarehouseID: "w1",
		Lines:       []ports.InvoiceLineInput{{ProductID: "p1", Quantity: 4}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if q := products.products["p1"].QuantityIn("w1"); q != 10 {
		t.Fatalf("expected stock restored, got %d", q)
	}
}

func TestInvoice_CreateRejectsEmptyAndUnknown(t *testing.T) {
	svc, _, _, _ := newInvoiceFixture()

	if _, err := svc.Create(context.Background(), ports.CreateInvoiceInput{CustomerID: "c1", WarehouseID: "w1"}); !errors.Is(err, domain.ErrEmptyInvoice) {
		t.Fatalf("expected empty invoice error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		CustomerID:  "ghost",
		WarehouseID: "w1",
		Lines:       []ports.InvoiceLineInput{{ProductID: "p1", Quantity: 1}},
	}); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected customer not found, got %v", err)
	}
}
