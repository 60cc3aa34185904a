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

// ProductReplace carries the full field set of a PUT-style replace.
type ProductReplace struct {
	Name        string
	Description string
	Price       models.Money
	Stock       int
	CategoryID  *primitive.ObjectID
	Images      string
}

// ProductPatch carries the optional fields of a PATCH-style update; only
// present fields are written.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *models.Money
	Stock       *int
	CategoryID  *primitive.ObjectID
	Images      *string
}

// IsEmpty reports whether the patch carries no fields.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Stock == nil && p.CategoryID == nil && p.Images == nil
}

// ProductRepository is the product data access interface.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, id primitive.ObjectID, replace ProductReplace) (*models.Product, error)
	Patch(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*models.Product, error)
}

// MongoProductRepository is the MongoDB implementation.
type MongoProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository creates a product repository.
func NewProductRepository(store *models.Store) *MongoProductRepository {
	return &MongoProductRepository{col: store.Collection(models.CollectionProducts)}
}

// List returns every product.
func (r *MongoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns one product, or nil when absent.
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByIDs returns the products matching the given ids.
func (r *MongoProductRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, product)
	return err
}

// Replace overwrites the full field set and returns the updated product, or
// nil when absent.
func (r *MongoProductRepository) Replace(ctx context.Context, id primitive.ObjectID, replace ProductReplace) (*models.Product, error) {
	set := bson.M{
		"name":        replace.Name,
		"description": replace.Description,
		"price":       replace.Price,
		"stock":       replace.Stock,
		"images":      replace.Images,
		"updatedAt":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if replace.CategoryID != nil {
		set["category"] = *replace.CategoryID
	} else {
		update["$unset"] = bson.M{"category": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Patch applies only the present fields and returns the updated product, or
// nil when absent.
func (r *MongoProductRepository) Patch(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.CategoryID != nil {
		set["category"] = *patch.CategoryID
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
