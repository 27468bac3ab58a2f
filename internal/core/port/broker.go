package port

import (
	"context"

	"github.com/rafaelleal24/orders/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort publishes domain events. PublishRaw is used by the outbox relay,
// which only holds the already-encoded payload.
type BrokerPort interface {
	Publish(ctx context.Context, event domain.Event) error
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
	Close() error
}
