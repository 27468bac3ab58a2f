package repository_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func (s *postgresSuite) TestProduct_CreateAndGet() {
	created := s.createProduct("29.99", 50)

	found, err := s.products.GetByID(s.ctx(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.Name, found.Name)
	s.True(found.Price.Equal(decimal.RequireFromString("29.99")), "price %s", found.Price)
	s.Equal(50, found.Stock)
}

func (s *postgresSuite) TestProduct_DuplicateName() {
	created := s.createProduct("1.00", 1)

	err := s.products.Create(s.ctx(), domain.NewProduct(created.Name, "", decimal.NewFromInt(2), 1))
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindConflict), "unexpected error %v", err)
}

func (s *postgresSuite) TestProduct_FindByName() {
	created := s.createProduct("3.50", 1)

	found, err := s.products.FindByName(s.ctx(), created.Name)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.products.FindByName(s.ctx(), "missing "+uuid.NewString())
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindNotFound), "unexpected error %v", err)
}

func (s *postgresSuite) TestProduct_FindAllByID() {
	p1 := s.createProduct("10.00", 5)
	p2 := s.createProduct("5.00", 2)

	tests := []struct {
		name     string
		ids      []domain.ID
		expected []domain.ID
	}{
		{"all found", []domain.ID{p1.ID, p2.ID}, []domain.ID{p1.ID, p2.ID}},
		{"unknown id skipped", []domain.ID{p1.ID, domain.ID(uuid.NewString())}, []domain.ID{p1.ID}},
		{"malformed id skipped", []domain.ID{"P9", p2.ID}, []domain.ID{p2.ID}},
		{"duplicates collapse", []domain.ID{p1.ID, p1.ID}, []domain.ID{p1.ID}},
		{"nothing valid", []domain.ID{"P9"}, nil},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			products, err := s.products.FindAllByID(s.ctx(), tt.ids)
			s.Require().NoError(err)

			ids := make([]domain.ID, len(products))
			for i, p := range products {
				ids[i] = p.ID
			}
			s.ElementsMatch(tt.expected, ids)
		})
	}
}

func (s *postgresSuite) TestProduct_UpdateQuantity() {
	p1 := s.createProduct("10.00", 5)
	p2 := s.createProduct("5.00", 2)

	updated, err := s.products.UpdateQuantity(s.ctx(), []domain.StockUpdate{
		domain.NewStockUpdate(p1, 3),
		domain.NewStockUpdate(p2, 2),
	})
	s.Require().NoError(err)
	s.Require().Len(updated, 2)
	s.Equal(2, updated[0].Stock)
	s.Equal(0, updated[1].Stock)
	s.Equal(2, s.stockOf(p1.ID))
	s.Equal(0, s.stockOf(p2.ID))
}

func (s *postgresSuite) TestProduct_UpdateQuantityConflictRollsBackBatch() {
	p1 := s.createProduct("10.00", 5)
	p2 := s.createProduct("5.00", 2)

	_, err := s.products.UpdateQuantity(s.ctx(), []domain.StockUpdate{
		domain.NewStockUpdate(p1, 3),
		{ProductID: p2.ID, Quantity: 0, Expected: 1},
	})
	s.True(serviceerrors.IsOfKind(err, serviceerrors.KindConflict), "unexpected error %v", err)
	s.Equal(5, s.stockOf(p1.ID))
	s.Equal(2, s.stockOf(p2.ID))
}

func (s *postgresSuite) TestProduct_GetAll() {
	for range 3 {
		s.createProduct("1.00", 1)
	}

	products, err := s.products.GetAll(s.ctx())
	s.Require().NoError(err)
	s.Len(products, 3)
}
