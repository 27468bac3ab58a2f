package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/rafaelleal24/orders/internal/adapters/mongo/document"
	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
}

func NewOutboxRepository(db *mongo.Database) outbox.Repository {
	return &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, "outbox"),
	}
}

// Insert joins the session carried by ctx, so an entry written inside
// WithTransaction commits or aborts together with the order.
func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.BaseRepository.Insert(ctx, document.OutboxDocument{
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  entry.EventData,
		CreatedAt:  createdAt,
	})
	return err
}

// FetchPending returns the oldest entries first.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	return lo.Map(docs, func(doc document.OutboxDocument, _ int) outbox.Entry {
		return outbox.Entry{
			ID:         doc.ID.Hex(),
			EventName:  doc.EventName,
			EntityName: doc.EntityName,
			EventData:  doc.EventData,
			CreatedAt:  doc.CreatedAt,
		}
	}), nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete outbox entry %s: %w", id, err)
	}
	return nil
}
