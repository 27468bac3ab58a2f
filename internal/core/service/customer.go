package service

import (
	"context"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

type CustomerService struct {
	customerRepository port.CustomerPort
}

func NewCustomerService(customerRepository port.CustomerPort) *CustomerService {
	return &CustomerService{customerRepository: customerRepository}
}

func (s *CustomerService) Create(ctx context.Context) (domain.ID, error) {
	id, err := s.customerRepository.Create(ctx)
	if err != nil {
		logger.Error(ctx, "customer: create failed", err, nil)
		return "", err
	}

	logger.Info(ctx, "Customer created", map[string]any{"customer_id": id})
	return id, nil
}

// FindByID reports a missing customer, or an id the store cannot parse,
// as KindNotFound. Storage failures are returned unchanged.
func (s *CustomerService) FindByID(ctx context.Context, id domain.ID) (*domain.Customer, error) {
	customer, err := s.customerRepository.FindByID(ctx, id)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) || serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			return nil, serviceerrors.NewNotFoundError("customer not found")
		}
		logger.Error(ctx, "customer: find failed", err, map[string]any{
			"customer_id": id,
		})
		return nil, err
	}

	return customer, nil
}
