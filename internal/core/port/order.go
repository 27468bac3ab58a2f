package port

import (
	"context"

	"github.com/rafaelleal24/orders/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type OrderPort interface {
	// Create persists the order header, its items and an order.created
	// outbox entry, filling in the generated ids and CreatedAt.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Order, error)
	GetByCustomerID(ctx context.Context, customerID domain.ID, limit, offset int64) ([]*domain.Order, error)
}
