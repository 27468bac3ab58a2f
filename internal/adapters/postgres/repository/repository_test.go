package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	"github.com/rafaelleal24/orders/internal/adapters/postgres/repository"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/port"
)

type postgresSuite struct {
	suite.Suite

	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool

	customers port.CustomerPort
	products  port.ProductPort
	orders    port.OrderPort
	outbox    outbox.Repository
	txManager port.TransactionManager
}

func TestPostgresRepositories(t *testing.T) {
	suite.Run(t, new(postgresSuite))
}

func (s *postgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("orders"),
		tcpostgres.WithUsername("orders"),
		tcpostgres.WithPassword("orders"),
		tcpostgres.WithInitScripts(filepath.Join("..", "testdata", "schema.sql")),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)

	s.customers = repository.NewCustomerRepository(s.pool)
	s.products = repository.NewProductRepository(s.pool)
	s.outbox = repository.NewOutboxRepository(s.pool)
	s.orders = repository.NewOrderRepository(s.pool, s.outbox)
	s.txManager = postgres.NewTransactionManager(s.pool)
}

func (s *postgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *postgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE outbox, order_items, orders, products, customers RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *postgresSuite) createCustomer() domain.ID {
	id, err := s.customers.Create(context.Background())
	s.Require().NoError(err)
	return id
}

func (s *postgresSuite) createProduct(price string, stock int) *domain.Product {
	product := domain.NewProduct(
		gofakeit.ProductName()+" "+gofakeit.UUID(),
		gofakeit.ProductDescription(),
		decimal.RequireFromString(price),
		stock,
	)
	s.Require().NoError(s.products.Create(context.Background(), product))
	return product
}

func (s *postgresSuite) newOrder(customerID domain.ID, products ...*domain.Product) *domain.Order {
	items := make([]domain.OrderItem, len(products))
	for i, p := range products {
		items[i] = *domain.NewOrderItem(p.ID, p.Name, i+1, p.Price)
	}
	return domain.NewOrder(customerID, items)
}

func (s *postgresSuite) stockOf(id domain.ID) int {
	product, err := s.products.GetByID(context.Background(), id)
	s.Require().NoError(err)
	return product.Stock
}

func (s *postgresSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}
