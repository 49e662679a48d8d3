package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxManager runs a unit of work atomically. The context handed to fn carries
// the session; repositories must use it for every write that belongs to the
// transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxManager implements TxManager on top of MongoDB sessions.
type MongoTxManager struct {
	client *mongo.Client
}

func NewMongoTxManager(client *mongo.Client) *MongoTxManager {
	return &MongoTxManager{client: client}
}

// WithTransaction commits when fn returns nil and aborts otherwise. The session
// is ended on every exit path.
func (m *MongoTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(context.Background())

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			if abortErr := sc.AbortTransaction(context.Background()); abortErr != nil {
				return fmt.Errorf("%w (abort failed: %v)", err, abortErr)
			}
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
