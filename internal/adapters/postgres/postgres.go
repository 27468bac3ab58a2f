package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/orders/internal/adapters/config"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func NewConnection(config config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres URL: %w", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	poolConfig.MinConns = config.MinConns
	if config.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = config.HealthCheckPeriod
	}
	poolConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return pool, nil
}

func Disconnect(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

const (
	uniqueViolation           = "23505"
	foreignKeyViolation       = "23503"
	checkViolation            = "23514"
	invalidTextRepresentation = "22P02"
)

// ParseError maps driver errors onto service error kinds.
func ParseError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return serviceerrors.NewConflictError("duplicate key error")
		case foreignKeyViolation:
			return serviceerrors.NewInvalidRequestError("referenced entity does not exist")
		case checkViolation:
			return serviceerrors.NewInvalidRequestError(pgErr.Message)
		case invalidTextRepresentation:
			return serviceerrors.NewInvalidRequestError("invalid ID format")
		}
	}
	return err
}
