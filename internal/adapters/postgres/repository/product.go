package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

const productColumns = `id::text, name, description, price::text, stock, created_at, updated_at`

type ProductRepository struct {
	pool      *pgxpool.Pool
	txManager port.TransactionManager
}

func NewProductRepository(pool *pgxpool.Pool) port.ProductPort {
	return &ProductRepository{
		pool:      pool,
		txManager: postgres.NewTransactionManager(pool),
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product domain.Product
		id      string
		price   string
	)
	err := row.Scan(&id, &product.Name, &product.Description, &price, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.ID = domain.ID(id)
	if product.Price, err = parseAmount(price); err != nil {
		return nil, fmt.Errorf("invalid price %q for product %s: %w", price, id, err)
	}
	return &product, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]*domain.Product, error) {
	rows, err := postgres.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.ParseError(err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.ParseError(err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	id := newID()
	createdAt := now()

	_, err := postgres.Conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		 VALUES ($1::text::uuid, $2, $3, $4::text::numeric, $5, $6, $6)`,
		string(id), product.Name, product.Description, product.Price.String(), product.Stock, createdAt,
	)
	if err != nil {
		return postgres.ParseError(err)
	}

	product.ID = id
	product.CreatedAt = createdAt
	product.UpdatedAt = createdAt
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(postgres.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1::text::uuid`, productID))
	if err != nil {
		return nil, postgres.ParseError(err)
	}
	return product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	product, err := scanProduct(postgres.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name))
	if err != nil {
		return nil, postgres.ParseError(err)
	}
	return product, nil
}

func (r *ProductRepository) FindAllByID(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	productIDs := parseIDs(ids)
	if len(productIDs) == 0 {
		return []*domain.Product{}, nil
	}

	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::text[]::uuid[])`, productIDs)
}

// UpdateQuantity sends every conditional update in one batch. A row that no
// longer holds the expected stock turns the whole call into a conflict.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) ([]*domain.Product, error) {
	var products []*domain.Product

	err := r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		batch := &pgx.Batch{}
		for _, update := range updates {
			productID, err := parseID(update.ProductID)
			if err != nil {
				return err
			}
			batch.Queue(
				`UPDATE products SET stock = $1, updated_at = $2
				 WHERE id = $3::text::uuid AND stock = $4
				 RETURNING `+productColumns,
				update.Quantity, now(), productID, update.Expected,
			)
		}

		results := postgres.Conn(txCtx, r.pool).SendBatch(txCtx, batch)
		defer results.Close()

		products = make([]*domain.Product, 0, len(updates))
		for _, update := range updates {
			product, err := scanProduct(results.QueryRow())
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return serviceerrors.NewConflictError(
						fmt.Sprintf("stock of product %s changed concurrently", update.ProductID))
				}
				return postgres.ParseError(err)
			}
			products = append(products, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}
