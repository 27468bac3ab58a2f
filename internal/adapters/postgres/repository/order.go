package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/port"
)

const orderColumns = `id::text, customer_id::text, total_amount::text, created_at`

type OrderRepository struct {
	pool      *pgxpool.Pool
	outbox    outbox.Repository
	txManager port.TransactionManager
}

func NewOrderRepository(pool *pgxpool.Pool, outbox outbox.Repository) port.OrderPort {
	return &OrderRepository{
		pool:      pool,
		outbox:    outbox,
		txManager: postgres.NewTransactionManager(pool),
	}
}

// Create writes the header, the items and the order.created event in one
// transaction, joining the caller's when ctx carries one.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID != "" {
		return errors.New("cannot create order with existing ID")
	}

	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		created := *order
		created.ID = newID()
		created.CreatedAt = now()
		created.Items = make([]domain.OrderItem, len(order.Items))

		conn := postgres.Conn(txCtx, r.pool)
		customerID, err := parseID(order.CustomerID)
		if err != nil {
			return err
		}

		_, err = conn.Exec(txCtx,
			`INSERT INTO orders (id, customer_id, total_amount, created_at)
			 VALUES ($1::text::uuid, $2::text::uuid, $3::text::numeric, $4)`,
			string(created.ID), customerID, created.TotalAmount.String(), created.CreatedAt,
		)
		if err != nil {
			return postgres.ParseError(err)
		}

		batch := &pgx.Batch{}
		for i, item := range order.Items {
			productID, err := parseID(item.ProductID)
			if err != nil {
				return err
			}
			item.ID = newID()
			created.Items[i] = item
			batch.Queue(
				`INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, unit_price)
				 VALUES ($1::text::uuid, $2::text::uuid, $3, $4::text::uuid, $5, $6, $7::text::numeric)`,
				string(item.ID), string(created.ID), i, productID, item.ProductName, item.Quantity, item.UnitPrice.String(),
			)
		}
		if err := conn.SendBatch(txCtx, batch).Close(); err != nil {
			return postgres.ParseError(err)
		}

		entry, err := outbox.NewEntry(domain.NewOrderCreatedEvent(&created))
		if err != nil {
			return err
		}
		if err := r.outbox.Insert(txCtx, entry); err != nil {
			return err
		}

		*order = created
		return nil
	})
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order      domain.Order
		id         string
		customerID string
		total      string
	)
	if err := row.Scan(&id, &customerID, &total, &order.CreatedAt); err != nil {
		return nil, err
	}

	totalAmount, err := parseAmount(total)
	if err != nil {
		return nil, fmt.Errorf("invalid total %q for order %s: %w", total, id, err)
	}
	order.ID = domain.ID(id)
	order.CustomerID = domain.ID(customerID)
	order.TotalAmount = totalAmount
	order.Items = []domain.OrderItem{}
	return &order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(postgres.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1::text::uuid`, orderID))
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) GetByCustomerID(ctx context.Context, customerID domain.ID, limit, offset int64) ([]*domain.Order, error) {
	parsedCustomerID, err := parseID(customerID)
	if err != nil {
		return nil, err
	}

	rows, err := postgres.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE customer_id = $1::text::uuid
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		parsedCustomerID, limit, offset,
	)
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, postgres.ParseError(err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := lo.Map(orders, func(o *domain.Order, _ int) string { return string(o.ID) })

	rows, err := postgres.Conn(ctx, r.pool).Query(ctx,
		`SELECT id::text, order_id::text, product_id::text, product_name, quantity, unit_price::text
		 FROM order_items
		 WHERE order_id = ANY($1::text[]::uuid[])
		 ORDER BY order_id, position`,
		ids,
	)
	if err != nil {
		return postgres.ParseError(err)
	}
	defer rows.Close()

	byOrder := lo.KeyBy(orders, func(o *domain.Order) domain.ID { return o.ID })
	for rows.Next() {
		var (
			item      domain.OrderItem
			id        string
			orderID   string
			productID string
			unitPrice string
		)
		if err := rows.Scan(&id, &orderID, &productID, &item.ProductName, &item.Quantity, &unitPrice); err != nil {
			return err
		}
		if item.UnitPrice, err = parseAmount(unitPrice); err != nil {
			return fmt.Errorf("invalid unit price %q for item %s: %w", unitPrice, id, err)
		}
		item.ID = domain.ID(id)
		item.ProductID = domain.ID(productID)

		if order, ok := byOrder[domain.ID(orderID)]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return postgres.ParseError(rows.Err())
}
