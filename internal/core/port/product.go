package port

import (
	"context"

	"github.com/rafaelleal24/orders/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// FindAllByID returns only the products that exist; callers detect
	// unknown ids by comparing counts.
	FindAllByID(ctx context.Context, ids []domain.ID) ([]*domain.Product, error)
	// UpdateQuantity fails with KindConflict when a product no longer holds
	// the stock recorded in StockUpdate.Expected.
	UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) ([]*domain.Product, error)
}
