package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

type OutboxRepository struct {
	pool *pgxpool.Pool
}

func NewOutboxRepository(pool *pgxpool.Pool) outbox.Repository {
	return &OutboxRepository{pool: pool}
}

func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}

	_, err := postgres.Conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO outbox (event_name, entity_name, event_data, created_at)
		 VALUES ($1, $2, $3::text::jsonb, $4)`,
		entry.EventName, entry.EntityName, string(entry.EventData), createdAt,
	)
	return postgres.ParseError(err)
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	rows, err := postgres.Conn(ctx, r.pool).Query(ctx,
		`SELECT id, event_name, entity_name, event_data::text, created_at
		 FROM outbox ORDER BY id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, postgres.ParseError(err)
	}
	defer rows.Close()

	entries := []outbox.Entry{}
	for rows.Next() {
		var (
			entry outbox.Entry
			id    int64
			data  string
		)
		if err := rows.Scan(&id, &entry.EventName, &entry.EntityName, &data, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.ID = strconv.FormatInt(id, 10)
		entry.EventData = []byte(data)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.ParseError(err)
	}
	return entries, nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	entryID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	}

	if _, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM outbox WHERE id = $1`, entryID); err != nil {
		return fmt.Errorf("failed to delete outbox entry %s: %w", id, err)
	}
	return nil
}
