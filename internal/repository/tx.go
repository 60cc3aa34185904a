package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs a function inside one multi-document transaction. The
// session-bound context is handed explicitly to every operation inside fn;
// the session is always ended when WithTransaction returns, and any error
// from fn aborts the whole unit.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxRunner implements TxRunner on a mongo client session.
type MongoTxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a transaction runner.
func NewTxRunner(client *mongo.Client) *MongoTxRunner {
	return &MongoTxRunner{client: client}
}

// WithTransaction starts a session, runs fn under a transaction and commits
// it when fn returns nil. Partial writes are never observable: any failure
// inside fn rolls the unit back in full.
func (r *MongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
