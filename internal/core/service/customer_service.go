package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, in ports.CustomerInput) (*domain.Customer, error) {
	rut := normalizeRUT(in.RUT)
	if existing, err := s.repo.FindByRUT(ctx, rut); err == nil && existing != nil {
		return nil, domain.ErrDuplicateRUT
	}
	if _, err := domain.CommunesOf(in.RegionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Customer{
		ID:    uuid.NewString(),
		RUT:   rut,
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Address: domain.Address{
			Street:    in.Street,
			RegionID:  in.RegionID,
			CommuneID: in.CommuneID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("rut", rut).Msg("failed to create customer")
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) Update(ctx context.Context, id string, in ports.CustomerInput) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := domain.CommunesOf(in.RegionID); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = domain.Address{
		Street:    in.Street,
		RegionID:  in.RegionID,
		CommuneID: in.CommuneID,
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context, filter ports.ListCustomersFilter) (*ports.ListCustomersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListCustomersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// normalizeRUT strips dots and uppercases the check digit, so
// "12.345.678-k" and "12345678-K" compare equal.
func normalizeRUT(rut string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rut), ".", ""))
}
