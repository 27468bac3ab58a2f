package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          ID
	CustomerID  ID
	Items       []OrderItem
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

// OrderItem keeps the product name and unit price as they were when the
// order was placed.
type OrderItem struct {
	ID          ID
	ProductID   ID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

func (o *OrderItem) CalculateTotalAmount() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

func NewOrderItem(productID ID, productName string, quantity int, unitPrice decimal.Decimal) *OrderItem {
	return &OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
}

func CalculateTotalAmount(items []OrderItem) decimal.Decimal {
	totalAmount := decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(item.CalculateTotalAmount())
	}
	return totalAmount
}

func NewOrder(customerID ID, items []OrderItem) *Order {
	return &Order{
		CustomerID:  customerID,
		Items:       items,
		CreatedAt:   time.Now(),
		TotalAmount: CalculateTotalAmount(items),
	}
}

type OrderCreatedItem struct {
	ProductID ID              `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderCreatedEvent struct {
	OrderID     ID                 `json:"order_id"`
	CustomerID  ID                 `json:"customer_id"`
	Items       []OrderCreatedItem `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (e *OrderCreatedEvent) GetName() string {
	return "order.created"
}

func (e *OrderCreatedEvent) GetEntityName() string {
	return "order"
}

func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	items := make([]OrderCreatedItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderCreatedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return &OrderCreatedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Items:       items,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
}
