package repository

import (
	"context"
	"time"

	"github.com/rafaelleal24/orders/internal/adapters/mongo/document"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/port"
	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerRepository struct {
	*BaseRepository[document.CustomerDocument]
}

func NewCustomerRepository(db *mongo.Database) port.CustomerPort {
	return &CustomerRepository{
		BaseRepository: NewBaseRepository[document.CustomerDocument](db, "customers"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context) (domain.ID, error) {
	id, err := r.Insert(ctx, document.CustomerDocument{CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", err
	}
	return domain.ID(id.Hex()), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Customer, error) {
	doc, err := r.BaseRepository.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}
