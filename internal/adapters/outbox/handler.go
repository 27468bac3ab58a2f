package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/orders/internal/adapters/config"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
)

// Handler relays stored events to the broker. Delivery is at-least-once: an
// event is deleted only after a successful publish.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.ProcessEvents(ctx)
		}
	}
}

// ProcessEvents relays one batch and returns how many events were published.
func (h *Handler) ProcessEvents(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	published := 0
	for _, entry := range entries {
		eventLogAttributes := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, eventLogAttributes)
			continue
		}
		published++

		logger.Debug(ctx, "outbox: event published", eventLogAttributes)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, eventLogAttributes)
		}
	}

	if published > 0 {
		logger.Info(ctx, "outbox: batch relayed", map[string]any{
			"published": published,
			"pending":   len(entries) - published,
		})
	}
	return published
}
