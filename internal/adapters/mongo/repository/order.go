package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/rafaelleal24/orders/internal/adapters/mongo"
	"github.com/rafaelleal24/orders/internal/adapters/mongo/document"
	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
)

type OrderRepository struct {
	*BaseRepository[document.OrderDocument]
	outbox    outbox.Repository
	txManager port.TransactionManager
}

func NewOrderRepository(db *mongo.Database, outbox outbox.Repository) port.OrderPort {
	baseRepo := NewBaseRepository[document.OrderDocument](db, "orders")

	repo := &OrderRepository{
		BaseRepository: baseRepo,
		outbox:         outbox,
		txManager:      mongoadapter.NewTransactionManager(db.Client()),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "orders",
		})
	}

	return repo
}

func (r *OrderRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetUnique(false),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts the order and its order.created event. It joins the
// session carried by ctx, or opens its own transaction when there is none.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID != "" {
		return errors.New("cannot create order with existing ID")
	}

	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		doc := document.ToDocument(order)
		doc.ID = primitive.NewObjectID()
		doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

		if _, err := r.collection.InsertOne(txCtx, doc); err != nil {
			return parseError(err)
		}

		created := *order
		created.ID = domain.ID(doc.ID.Hex())
		created.CreatedAt = doc.CreatedAt
		created.Items = make([]domain.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.ID = domain.ID(doc.Items[i].ID.Hex())
			created.Items[i] = item
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

func (r *OrderRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Order, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *OrderRepository) GetByCustomerID(ctx context.Context, customerID domain.ID, limit, offset int64) ([]*domain.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(string(customerID))
	if err != nil {
		return nil, parseError(err)
	}

	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	docs, err := r.Find(ctx, bson.M{"customer_id": objectID}, opts)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(docs))
	for i, doc := range docs {
		orders[i] = doc.ToDomain()
	}

	return orders, nil
}
