package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CollectionUsers        = "users"
	CollectionCategories   = "categories"
	CollectionProducts     = "products"
	CollectionCarts        = "carts"
	CollectionOrders       = "orders"
	CollectionOrderDetails = "order_details"
)

const defaultConnectTimeout = 10 * time.Second

// StoreOptions configures the MongoDB connection.
type StoreOptions struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

// Store is the injected database handle. It is constructed once at startup,
// passed to every repository, and closed after the runner exits.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, opts StoreOptions) (*Store, error) {
	if opts.URI == "" {
		return nil, errors.New("store: mongodb uri is empty")
	}
	if opts.Name == "" {
		return nil, errors.New("store: database name is empty")
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(timeout)
	if opts.MaxPoolSize > 0 {
		clientOpts = clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.MinPoolSize > 0 {
		clientOpts = clientOpts.SetMinPoolSize(opts.MinPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(opts.Name),
	}, nil
}

// Client returns the underlying mongo client (used for sessions).
func (s *Store) Client() *mongo.Client {
	return s.client
}

// DB returns the database handle.
func (s *Store) DB() *mongo.Database {
	return s.db
}

// Collection returns a collection handle by name.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the indexes the stores rely on: unique user emails,
// one cart per user, and the order reference on line items.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.Collection(CollectionUsers).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("store: users indexes: %w", err)
	}

	carts := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.Collection(CollectionCarts).Indexes().CreateMany(ctx, carts); err != nil {
		return fmt.Errorf("store: carts indexes: %w", err)
	}

	details := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderId", Value: 1}},
		},
	}
	if _, err := s.Collection(CollectionOrderDetails).Indexes().CreateMany(ctx, details); err != nil {
		return fmt.Errorf("store: order_details indexes: %w", err)
	}

	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
