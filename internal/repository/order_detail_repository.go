package repository

import (
	"context"

	"github.com/cartloom/cartloom/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderDetailRepository is the line-item data access interface. Mutations
// are only ever called inside the same transaction as their order header.
type OrderDetailRepository interface {
	ListAll(ctx context.Context) ([]models.OrderDetail, error)
	ListByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderDetail, error)
	InsertMany(ctx context.Context, details []models.OrderDetail) error
	DeleteByOrderID(ctx context.Context, orderID primitive.ObjectID) error
}

// MongoOrderDetailRepository is the MongoDB implementation.
type MongoOrderDetailRepository struct {
	col *mongo.Collection
}

// NewOrderDetailRepository creates a line-item repository.
func NewOrderDetailRepository(store *models.Store) *MongoOrderDetailRepository {
	return &MongoOrderDetailRepository{col: store.Collection(models.CollectionOrderDetails)}
}

// ListAll returns every line item across all orders.
func (r *MongoOrderDetailRepository) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var details []models.OrderDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByOrderID returns the line items of one order. An order with zero
// line items yields an empty slice, not an error.
func (r *MongoOrderDetailRepository) ListByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderDetail, error) {
	cursor, err := r.col.Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	var details []models.OrderDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// InsertMany writes a batch of line items.
func (r *MongoOrderDetailRepository) InsertMany(ctx context.Context, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(details))
	for i := range details {
		if details[i].ID.IsZero() {
			details[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, details[i])
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

// DeleteByOrderID removes every line item of one order.
func (r *MongoOrderDetailRepository) DeleteByOrderID(ctx context.Context, orderID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"orderId": orderID})
	return err
}
