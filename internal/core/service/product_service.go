package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

const maxPageLimit = 100

type ProductService struct {
	repo       ports.ProductRepository
	warehouses ports.WarehouseRepository
	logger     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, warehouses ports.WarehouseRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, warehouses: warehouses, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if existing, err := s.repo.FindBySKU(ctx, sku); err == nil && existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:          uuid.NewString(),
		SKU:         sku,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		UnitPrice:   in.UnitPrice,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("sku", sku).Msg("failed to create product")
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID).Str("sku", sku).Msg("product created")
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// AdjustStock moves stock in or out of a warehouse. Negative deltas
// may not take the on-hand quantity below zero.
func (s *ProductService) AdjustStock(ctx context.Context, productID, warehouseID string, delta int64) error {
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		return err
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if delta < 0 && p.QuantityIn(warehouseID)+delta < 0 {
		return domain.ErrInsufficientStock
	}
	if err := s.repo.AdjustStock(ctx, productID, warehouseID, delta); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", productID).Msg("stock adjustment failed")
		return err
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
