package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/rafaelleal24/orders/internal/adapters/mongo/document"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database) port.ProductPort {
	repo := &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, "products"),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "products",
		})
	}

	return repo
}

func (r *ProductRepository) createIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc := document.ToProductDocument(product)
	doc.ID = primitive.NilObjectID

	id, err := r.Insert(ctx, *doc)
	if err != nil {
		return err
	}

	product.ID = domain.ID(id.Hex())
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	doc, err := r.FindOne(ctx, bson.M{"name": name})
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

// FindAllByID ignores ids that are not valid ObjectIDs; they cannot match.
func (r *ProductRepository) FindAllByID(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	objectIDs := lo.FilterMap(ids, func(id domain.ID, _ int) (primitive.ObjectID, bool) {
		oid, err := primitive.ObjectIDFromHex(string(id))
		return oid, err == nil
	})
	if len(objectIDs) == 0 {
		return []*domain.Product{}, nil
	}

	docs, err := r.Find(ctx, bson.M{"_id": bson.M{"$in": lo.Uniq(objectIDs)}})
	if err != nil {
		return nil, err
	}

	return lo.Map(docs, func(doc document.ProductDocument, _ int) *domain.Product {
		return doc.ToDomain()
	}), nil
}

// UpdateQuantity writes each new stock level only if the product still holds
// the expected quantity. Any miss is reported as a conflict so the enclosing
// transaction aborts.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(updates))
	for _, update := range updates {
		objectID, err := primitive.ObjectIDFromHex(string(update.ProductID))
		if err != nil {
			return nil, parseError(err)
		}

		var doc document.ProductDocument
		err = r.collection.FindOneAndUpdate(ctx,
			bson.M{"_id": objectID, "stock": update.Expected},
			bson.M{"$set": bson.M{"stock": update.Quantity, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, serviceerrors.NewConflictError(
					fmt.Sprintf("stock of product %s changed concurrently", update.ProductID))
			}
			return nil, parseError(err)
		}

		products = append(products, doc.ToDomain())
	}

	return products, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToDomain()
	}

	return products, nil
}
