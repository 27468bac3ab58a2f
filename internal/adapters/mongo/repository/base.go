package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rafaelleal24/orders/internal/adapters/mongo/document"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository holds the read and insert paths shared by every collection.
// All methods translate driver errors into service error kinds.
type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
	}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, parseError(err)
	}
	return r.FindOne(ctx, bson.M{"_id": objectID})
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, parseError(err)
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, parseError(err)
	}

	return entities, nil
}

func (r *BaseRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	if err := r.collection.FindOne(ctx, filter).Decode(&entity); err != nil {
		return nil, parseError(err)
	}
	return &entity, nil
}

// Insert stores entity and returns the id the server assigned when the
// document left it empty.
func (r *BaseRepository[T]) Insert(ctx context.Context, entity T) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, entity)
	if err != nil {
		return primitive.NilObjectID, parseError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

func parseError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return serviceerrors.NewNotFoundError("entity not found")
	case mongo.IsDuplicateKeyError(err):
		return serviceerrors.NewConflictError("duplicate key error")
	case isInvalidObjectID(err):
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	default:
		return err
	}
}

// ObjectIDFromHex reports a wrong length as ErrInvalidHex but a non-hex
// character as a raw hex.InvalidByteError.
func isInvalidObjectID(err error) bool {
	var invalidByte hex.InvalidByteError
	return errors.Is(err, primitive.ErrInvalidHex) || errors.As(err, &invalidByte)
}
