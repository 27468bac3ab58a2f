package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rafaelleal24/orders/internal/core/domain"
)

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	CreatedAt  time.Time
}

// NewEntry serializes event for storage next to the write that produced it.
func NewEntry(event domain.Event) (Entry, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal %s event: %w", event.GetName(), err)
	}
	return Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
		CreatedAt:  time.Now(),
	}, nil
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// Repository stores events until they are relayed. Insert must run in the
// caller's transaction scope, carried by ctx.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
