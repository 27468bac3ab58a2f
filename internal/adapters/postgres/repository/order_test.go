package repository_test

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func (s *postgresSuite) TestOrder_CreateAndGet() {
	customerID := s.createCustomer()
	p1 := s.createProduct("10.00", 5)
	p2 := s.createProduct("5.00", 2)

	order := s.newOrder(customerID, p1, p2)
	s.Require().NoError(s.orders.Create(s.ctx(), order))
	s.Require().NoError(uuid.Validate(string(order.ID)))
	for _, item := range order.Items {
		s.NotEmpty(item.ID)
	}

	found, err := s.orders.GetByID(s.ctx(), order.ID)
	s.Require().NoError(err)

	diff := cmp.Diff(order, found,
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
		cmpopts.EquateApproxTime(0),
	)
	s.Empty(diff)
	s.True(found.TotalAmount.Equal(decimal.RequireFromString("20.00")), "total %s", found.TotalAmount)
}

func (s *postgresSuite) TestOrder_CreateWritesOutboxEvent() {
	customerID := s.createCustomer()
	order := s.newOrder(customerID, s.createProduct("10.00", 5))
	s.Require().NoError(s.orders.Create(s.ctx(), order))

	entries, err := s.outbox.FetchPending(s.ctx(), 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("order.created", entries[0].EventName)

	var event domain.OrderCreatedEvent
	s.Require().NoError(json.Unmarshal(entries[0].EventData, &event))
	s.Equal(order.ID, event.OrderID)
	s.Equal(customerID, event.CustomerID)

	s.Require().NoError(s.outbox.Delete(s.ctx(), entries[0].ID))
	entries, err = s.outbox.FetchPending(s.ctx(), 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *postgresSuite) TestOrder_UnknownCustomerIsRejected() {
	order := s.newOrder(domain.ID(uuid.NewString()), s.createProduct("10.00", 5))

	err := s.orders.Create(s.ctx(), order)
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest), "unexpected error %v", err)
	s.Empty(order.ID)
}

func (s *postgresSuite) TestOrder_GetByCustomerID() {
	customerID := s.createCustomer()
	product := s.createProduct("1.00", 100)

	var created []*domain.Order
	for range 3 {
		order := s.newOrder(customerID, product)
		s.Require().NoError(s.orders.Create(s.ctx(), order))
		created = append(created, order)
	}

	orders, err := s.orders.GetByCustomerID(s.ctx(), customerID, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(orders, 3)
	s.Equal(created[2].ID, orders[0].ID)
	s.Len(orders[0].Items, 1)

	page, err := s.orders.GetByCustomerID(s.ctx(), customerID, 2, 2)
	s.Require().NoError(err)
	s.Len(page, 1)

	_, err = s.orders.GetByID(s.ctx(), domain.ID(uuid.NewString()))
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindNotFound), "unexpected error %v", err)
}

func (s *postgresSuite) TestTransaction_RollsBackOrderAndStock() {
	customerID := s.createCustomer()
	p1 := s.createProduct("10.00", 5)
	p2 := s.createProduct("5.00", 2)

	err := s.txManager.WithTransaction(s.ctx(), func(txCtx context.Context) error {
		if err := s.orders.Create(txCtx, s.newOrder(customerID, p1, p2)); err != nil {
			return err
		}
		_, err := s.products.UpdateQuantity(txCtx, []domain.StockUpdate{
			domain.NewStockUpdate(p1, 1),
			{ProductID: p2.ID, Quantity: 0, Expected: 1},
		})
		return err
	})
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindConflict), "unexpected error %v", err)

	s.Equal(5, s.stockOf(p1.ID))
	orders, err := s.orders.GetByCustomerID(s.ctx(), customerID, 10, 0)
	s.Require().NoError(err)
	s.Empty(orders)
	entries, err := s.outbox.FetchPending(s.ctx(), 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *postgresSuite) TestTransaction_Commits() {
	p := s.createProduct("10.00", 5)

	err := s.txManager.WithTransaction(s.ctx(), func(txCtx context.Context) error {
		_, err := s.products.UpdateQuantity(txCtx, []domain.StockUpdate{domain.NewStockUpdate(p, 5)})
		return err
	})
	s.Require().NoError(err)
	s.Equal(0, s.stockOf(p.ID))

	fnErr := errors.New("boom")
	err = s.txManager.WithTransaction(s.ctx(), func(context.Context) error { return fnErr })
	s.ErrorIs(err, fnErr)
}
