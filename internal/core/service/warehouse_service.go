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

type WarehouseService struct {
	repo   ports.WarehouseRepository
	logger zerolog.Logger
}

func NewWarehouseService(repo ports.WarehouseRepository, logger zerolog.Logger) *WarehouseService {
	return &WarehouseService{repo: repo, logger: logger}
}

func (s *WarehouseService) Create(ctx context.Context, in ports.WarehouseInput) (*domain.Warehouse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if _, err := domain.CommunesOf(in.RegionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &domain.Warehouse{
		ID:   uuid.NewString(),
		Code: code,
		Name: in.Name,
		Address: domain.Address{
			Street:    in.Street,
			RegionID:  in.RegionID,
			CommuneID: in.CommuneID,
		},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to create warehouse")
		return nil, err
	}
	return w, nil
}

func (s *WarehouseService) Get(ctx context.Context, id string) (*domain.Warehouse, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *WarehouseService) Update(ctx context.Context, id string, in ports.WarehouseInput) (*domain.Warehouse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := domain.CommunesOf(in.RegionID); err != nil {
		return nil, err
	}
	w.Name = in.Name
	w.Address = domain.Address{
		Street:    in.Street,
		RegionID:  in.RegionID,
		CommuneID: in.CommuneID,
	}
	w.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WarehouseService) List(ctx context.Context) ([]*domain.Warehouse, error) {
	return s.repo.List(ctx)
}

func (s *WarehouseService) Deactivate(ctx context.Context, id string) error {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	w.Active = false
	w.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, w)
}
