package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          ID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name string, description string, price decimal.Decimal, stock int) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// StockUpdate sets a product's stock to Quantity, provided it still holds
// Expected units when the write happens.
type StockUpdate struct {
	ProductID ID
	Quantity  int
	Expected  int
}

func NewStockUpdate(product *Product, quantity int) StockUpdate {
	return StockUpdate{
		ProductID: product.ID,
		Quantity:  product.Stock - quantity,
		Expected:  product.Stock,
	}
}
