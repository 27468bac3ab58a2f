package repository_test

import (
	"github.com/google/uuid"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func (s *postgresSuite) TestCustomer_CreateAndFind() {
	id := s.createCustomer()
	s.Require().NoError(uuid.Validate(string(id)))

	customer, err := s.customers.FindByID(s.ctx(), id)
	s.Require().NoError(err)
	s.Equal(id, customer.ID)
	s.False(customer.CreatedAt.IsZero())
}

func (s *postgresSuite) TestCustomer_FindByIDErrors() {
	tests := []struct {
		name string
		id   domain.ID
		kind serviceerrors.ErrorKind
	}{
		{"unknown id", domain.ID(uuid.NewString()), serviceerrors.KindNotFound},
		{"malformed id", "aabbccddee112233aabbccdd", serviceerrors.KindInvalidRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.customers.FindByID(s.ctx(), tt.id)
			s.Require().Error(err)
			s.True(serviceerrors.IsOfKind(err, tt.kind), "unexpected error %v", err)
		})
	}
}
