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

// CartRepository is the cart data access interface. Carts are whole-document
// read/modify/write: there is no transactional envelope, so concurrent
// writers to the same cart can lose updates (inherited source behavior).
type CartRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// MongoCartRepository is the MongoDB implementation.
type MongoCartRepository struct {
	col *mongo.Collection
}

// NewCartRepository creates a cart repository.
func NewCartRepository(store *models.Store) *MongoCartRepository {
	return &MongoCartRepository{col: store.Collection(models.CollectionCarts)}
}

// GetByUserID returns the single cart of a user, or nil when absent.
func (r *MongoCartRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save upserts the whole cart document keyed by its user.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	now := time.Now().UTC()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts)
	return err
}
