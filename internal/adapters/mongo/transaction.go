package mongo

import (
	"context"
	"fmt"

	"github.com/rafaelleal24/orders/internal/core/port"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type TransactionManager struct {
	client *mongo.Client
	opts   *options.TransactionOptions
}

func NewTransactionManager(client *mongo.Client) port.TransactionManager {
	return &TransactionManager{
		client: client,
		// collections may be created implicitly inside the transaction, which
		// requires read concern "local"
		opts: options.Transaction().
			SetReadConcern(readconcern.Local()).
			SetWriteConcern(writeconcern.Majority()),
	}
}

// WithTransaction runs fn in a session transaction. A ctx that already
// carries a session joins it. The driver may call fn again on transient
// errors, so fn must rebuild any state it writes.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := tm.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, tm.opts)

	return err
}
