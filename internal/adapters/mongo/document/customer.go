package document

import (
	"time"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (doc CustomerDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *CustomerDocument) ToDomain() *domain.Customer {
	return &domain.Customer{
		ID:        domain.ID(doc.ID.Hex()),
		CreatedAt: doc.CreatedAt,
	}
}
