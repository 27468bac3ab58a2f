package dto

import "github.com/rafaelleal24/orders/internal/core/domain"

// OrderItem is one requested line. The same product may appear more than
// once; quantities are summed before stock is checked.
type OrderItem struct {
	ProductID domain.ID `json:"product_id" example:"6650f1c2a4b5c6d7e8f90123"`
	Quantity  int       `json:"quantity" example:"2"`
}

// CreateOrderRequest is validated by OrderService, not by the HTTP binding,
// so every entry point gets the same rejections.
type CreateOrderRequest struct {
	CustomerID domain.ID   `json:"customer_id" example:"6650f1c2a4b5c6d7e8f90001"`
	Items      []OrderItem `json:"items"`
}
