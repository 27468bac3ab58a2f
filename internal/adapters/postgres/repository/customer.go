package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/port"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) port.CustomerPort {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Create(ctx context.Context) (domain.ID, error) {
	id := newID()
	_, err := postgres.Conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO customers (id, created_at) VALUES ($1::text::uuid, $2)`,
		string(id), now(),
	)
	if err != nil {
		return "", postgres.ParseError(err)
	}
	return id, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var customer domain.Customer
	var rawID string
	err = postgres.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT id::text, created_at FROM customers WHERE id = $1::text::uuid`,
		customerID,
	).Scan(&rawID, &customer.CreatedAt)
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	customer.ID = domain.ID(rawID)
	return &customer, nil
}
