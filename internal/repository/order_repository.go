package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cartloom/cartloom/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderUpdate carries the full replaceable field set of an order header.
type OrderUpdate struct {
	UserID          primitive.ObjectID
	TotalAmount     models.Money
	Status          string
	PaymentMethod   string
	ShippingAddress string
}

// OrderRepository is the order-header data access interface. Every method
// honors a session-bound context, so the mutating ones can run inside a
// TxRunner transaction together with the line-item operations.
type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Insert(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id primitive.ObjectID, update OrderUpdate) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

// MongoOrderRepository is the MongoDB implementation.
type MongoOrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(store *models.Store) *MongoOrderRepository {
	return &MongoOrderRepository{col: store.Collection(models.CollectionOrders)}
}

// List returns every order header.
func (r *MongoOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns one header, or nil when absent.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Insert writes a new header.
func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, order)
	return err
}

// Update replaces the header fields and returns the updated header, or nil
// when absent.
func (r *MongoOrderRepository) Update(ctx context.Context, id primitive.ObjectID, update OrderUpdate) (*models.Order, error) {
	set := bson.M{
		"user":            update.UserID,
		"totalAmount":     update.TotalAmount,
		"status":          update.Status,
		"paymentMethod":   update.PaymentMethod,
		"shippingAddress": update.ShippingAddress,
		"updatedAt":       time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes a header and returns the removed document, or nil when
// absent.
func (r *MongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
