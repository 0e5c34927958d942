package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type ServiceOrderService struct {
	repo      ports.ServiceOrderRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewServiceOrderService(repo ports.ServiceOrderRepository, customers ports.CustomerRepository, logger zerolog.Logger) *ServiceOrderService {
	return &ServiceOrderService{repo: repo, customers: customers, logger: logger}
}

func (s *ServiceOrderService) Create(ctx context.Context, in ports.CreateServiceOrderInput) (*domain.ServiceOrder, error) {
	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &domain.ServiceOrder{
		ID:           uuid.NewString(),
		Number:       number,
		CustomerID:   in.CustomerID,
		Equipment:    in.Equipment,
		SerialNumber: in.SerialNumber,
		Problem:      in.Problem,
		Status:       domain.OrderReceived,
		StatusHistory: []domain.OrderStatusChange{
			{Status: domain.OrderReceived, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("number", number).Msg("failed to create service order")
		return nil, err
	}
	s.logger.Info().Str("order_id", o.ID).Str("number", number).Msg("service order opened")
	return o, nil
}

func (s *ServiceOrderService) Get(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceOrderService) List(ctx context.Context, filter ports.ListServiceOrdersFilter) (*ports.ListServiceOrdersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListServiceOrdersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateStatus advances the order through its lifecycle, rejecting
// transitions not allowed by the status state machine.
func (s *ServiceOrderService) UpdateStatus(ctx context.Context, id string, in ports.UpdateOrderStatusInput) (*domain.ServiceOrder, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	o.Status = in.Status
	o.StatusHistory = append(o.StatusHistory, domain.OrderStatusChange{
		Status:    in.Status,
		Timestamp: now,
		Notes:     in.Notes,
		ByUserID:  in.ByUserID,
	})
	o.UpdatedAt = now

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", o.ID).Str("status", string(in.Status)).Msg("service order status updated")
	return o, nil
}

func (s *ServiceOrderService) Assign(ctx context.Context, id, technicianID string) (*domain.ServiceOrder, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.TechnicianID = technicianID
	o.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ServiceOrderService) SetDiagnosis(ctx context.Context, id, diagnosis string) (*domain.ServiceOrder, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Diagnosis = diagnosis
	o.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
