package port

import (
	"context"

	"github.com/rafaelleal24/orders/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// CustomerPort looks customers up for order validation. FindByID reports an
// unknown id as KindNotFound and a malformed one as KindInvalidRequest.
type CustomerPort interface {
	Create(ctx context.Context) (domain.ID, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.Customer, error)
}
