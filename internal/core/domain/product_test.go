package domain

import (
	"testing"
	"time"
)

func TestNewProduct(t *testing.T) {
	before := time.Now()
	p := NewProduct("Widget", "A fine widget", NewAmountFromCents(4999), 25)
	after := time.Now()

	if p.Name != "Widget" {
		t.Fatalf("expected name 'Widget', got %q", p.Name)
	}
	if p.Description != "A fine widget" {
		t.Fatalf("expected description 'A fine widget', got %q", p.Description)
	}
	if !p.Price.Equal(NewAmountFromCents(4999)) {
		t.Fatalf("expected price 49.99, got %s", p.Price)
	}
	if p.Stock != 25 {
		t.Fatalf("expected stock 25, got %d", p.Stock)
	}
	if p.ID != "" {
		t.Fatalf("expected empty ID, got %q", p.ID)
	}
	if p.CreatedAt.Before(before) || p.CreatedAt.After(after) {
		t.Fatalf("CreatedAt %v not in expected range [%v, %v]", p.CreatedAt, before, after)
	}
	if p.UpdatedAt.Before(before) || p.UpdatedAt.After(after) {
		t.Fatalf("UpdatedAt %v not in expected range [%v, %v]", p.UpdatedAt, before, after)
	}
}

func TestProduct_HasStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		quantity int
		want     bool
	}{
		{"more than requested", 5, 3, true},
		{"exactly requested", 2, 2, true},
		{"less than requested", 2, 5, false},
		{"empty stock", 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Stock: tt.stock}
			if got := p.HasStock(tt.quantity); got != tt.want {
				t.Errorf("HasStock(%d) with stock %d = %v, want %v", tt.quantity, tt.stock, got, tt.want)
			}
		})
	}
}

func TestNewStockUpdate(t *testing.T) {
	p := &Product{ID: "p1", Stock: 5}

	update := NewStockUpdate(p, 3)

	if update.ProductID != "p1" {
		t.Fatalf("expected ProductID 'p1', got %q", update.ProductID)
	}
	if update.Quantity != 2 {
		t.Fatalf("expected new quantity 2, got %d", update.Quantity)
	}
	if update.Expected != 5 {
		t.Fatalf("expected Expected 5, got %d", update.Expected)
	}
	if p.Stock != 5 {
		t.Fatalf("product stock must not be mutated, got %d", p.Stock)
	}
}
