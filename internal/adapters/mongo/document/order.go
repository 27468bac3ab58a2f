package document

import (
	"time"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Line items are embedded in the order document so that the header and its
// items are written by a single insert.
type OrderItemDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	ProductID   primitive.ObjectID   `bson:"product_id"`
	ProductName string               `bson:"product_name"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
}

type OrderDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	CustomerID  primitive.ObjectID   `bson:"customer_id"`
	Items       []OrderItemDocument  `bson:"items"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (doc OrderDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *OrderDocument) ToDomain() *domain.Order {
	items := make([]domain.OrderItem, len(doc.Items))
	for i, itemDoc := range doc.Items {
		items[i] = domain.OrderItem{
			ID:          domain.ID(itemDoc.ID.Hex()),
			ProductID:   domain.ID(itemDoc.ProductID.Hex()),
			ProductName: itemDoc.ProductName,
			Quantity:    itemDoc.Quantity,
			UnitPrice:   fromDecimal128(itemDoc.UnitPrice),
		}
	}

	return &domain.Order{
		ID:          domain.ID(doc.ID.Hex()),
		CustomerID:  domain.ID(doc.CustomerID.Hex()),
		Items:       items,
		TotalAmount: fromDecimal128(doc.TotalAmount),
		CreatedAt:   doc.CreatedAt,
	}
}

// ToDocument assigns fresh ObjectIDs to items that have none yet.
func ToDocument(order *domain.Order) *OrderDocument {
	items := make([]OrderItemDocument, len(order.Items))
	for i, item := range order.Items {
		itemDoc := OrderItemDocument{
			ID:          objectIDFromHex(string(item.ID)),
			ProductID:   objectIDFromHex(string(item.ProductID)),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   toDecimal128(item.UnitPrice),
		}
		if itemDoc.ID.IsZero() {
			itemDoc.ID = primitive.NewObjectID()
		}
		items[i] = itemDoc
	}

	return &OrderDocument{
		ID:          objectIDFromHex(string(order.ID)),
		CustomerID:  objectIDFromHex(string(order.CustomerID)),
		Items:       items,
		TotalAmount: toDecimal128(order.TotalAmount),
		CreatedAt:   order.CreatedAt,
	}
}
