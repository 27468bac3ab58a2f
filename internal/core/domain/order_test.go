package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewOrderItem(t *testing.T) {
	item := NewOrderItem("prod123", "Widget", 3, NewAmountFromCents(1500))

	if item.ProductID != "prod123" {
		t.Fatalf("expected ProductID 'prod123', got %q", item.ProductID)
	}
	if item.ProductName != "Widget" {
		t.Fatalf("expected ProductName 'Widget', got %q", item.ProductName)
	}
	if item.Quantity != 3 {
		t.Fatalf("expected Quantity 3, got %d", item.Quantity)
	}
	if !item.UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected UnitPrice 15.00, got %s", item.UnitPrice)
	}
	if item.ID != "" {
		t.Fatalf("expected empty ID, got %q", item.ID)
	}
}

func TestOrderItem_CalculateTotalAmount(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		qty      int
		expected string
	}{
		{"single item", "15.00", 1, "15"},
		{"multiple items", "15.00", 3, "45"},
		{"fractional price", "0.10", 3, "0.3"},
		{"zero price", "0", 5, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &OrderItem{UnitPrice: decimal.RequireFromString(tt.price), Quantity: tt.qty}
			if got := item.CalculateTotalAmount(); !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("CalculateTotalAmount() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestCalculateTotalAmount(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderItem
		expected string
	}{
		{
			"single item",
			[]OrderItem{{UnitPrice: NewAmountFromCents(1000), Quantity: 2}},
			"20",
		},
		{
			"multiple items",
			[]OrderItem{
				{UnitPrice: NewAmountFromCents(1000), Quantity: 3},
				{UnitPrice: NewAmountFromCents(500), Quantity: 2},
			},
			"40",
		},
		{
			"empty items",
			[]OrderItem{},
			"0",
		},
		{
			"nil items",
			nil,
			"0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalAmount(tt.items); !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("CalculateTotalAmount() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", ProductName: "A", Quantity: 3, UnitPrice: NewAmountFromCents(1000)},
		{ProductID: "p2", ProductName: "B", Quantity: 2, UnitPrice: NewAmountFromCents(500)},
	}

	before := time.Now()
	order := NewOrder("cust1", items)
	after := time.Now()

	if order.CustomerID != "cust1" {
		t.Fatalf("expected CustomerID 'cust1', got %q", order.CustomerID)
	}
	if order.ID != "" {
		t.Fatalf("expected empty ID, got %q", order.ID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}

	// 10.00*3 + 5.00*2 = 40.00
	if !order.TotalAmount.Equal(NewAmountFromCents(4000)) {
		t.Fatalf("expected TotalAmount 40.00, got %s", order.TotalAmount)
	}

	if order.CreatedAt.Before(before) || order.CreatedAt.After(after) {
		t.Fatalf("CreatedAt not in expected range")
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	order := NewOrder("cust1", []OrderItem{
		{ProductID: "p1", Quantity: 3, UnitPrice: NewAmountFromCents(1000)},
	})
	order.ID = "order1"

	event := NewOrderCreatedEvent(order)

	if event.OrderID != "order1" {
		t.Fatalf("expected OrderID 'order1', got %q", event.OrderID)
	}
	if event.CustomerID != "cust1" {
		t.Fatalf("expected CustomerID 'cust1', got %q", event.CustomerID)
	}
	if len(event.Items) != 1 || event.Items[0].ProductID != "p1" || event.Items[0].Quantity != 3 {
		t.Fatalf("unexpected event items: %+v", event.Items)
	}
	if !event.TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("expected total %s, got %s", order.TotalAmount, event.TotalAmount)
	}
	if !event.CreatedAt.Equal(order.CreatedAt) {
		t.Fatalf("expected CreatedAt %v, got %v", order.CreatedAt, event.CreatedAt)
	}
}

func TestOrderCreatedEvent_Names(t *testing.T) {
	event := &OrderCreatedEvent{}
	if got := event.GetName(); got != "order.created" {
		t.Fatalf("expected 'order.created', got %q", got)
	}
	if got := event.GetEntityName(); got != "order" {
		t.Fatalf("expected 'order', got %q", got)
	}
}
