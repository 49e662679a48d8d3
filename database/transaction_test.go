package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, ev := range mt.GetAllStartedEvents() {
		names = append(names, ev.CommandName)
	}
	return names
}

// Each subtest fails if a session is still checked out when it returns.
func TestMongoTxManager_WithTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("commits on success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		tx := NewMongoTxManager(mt.Client)

		err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
			_, err := mt.Coll.InsertOne(ctx, bson.D{{Key: "partnerOrderId", Value: "HFLABCDEFGHIJ"}})
			return err
		})
		require.NoError(mt, err)

		names := commandNames(mt)
		assert.Equal(mt, []string{"insert", "commitTransaction"}, names)
		insert := mt.GetAllStartedEvents()[0].Command
		started, err := insert.LookupErr("startTransaction")
		require.NoError(mt, err)
		assert.True(mt, started.Boolean())
	})

	mt.Run("aborts when the unit of work fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		tx := NewMongoTxManager(mt.Client)
		errOutbox := errors.New("outbox insert failed")

		err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
			if _, err := mt.Coll.InsertOne(ctx, bson.D{{Key: "partnerOrderId", Value: "CRABCDEFGHIJ"}}); err != nil {
				return err
			}
			return errOutbox
		})
		assert.ErrorIs(mt, err, errOutbox)
		assert.Equal(mt, []string{"insert", "abortTransaction"}, commandNames(mt))
	})

	mt.Run("surfaces store errors without committing", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 112, Name: "WriteConflict", Message: "write conflict"}),
			mtest.CreateSuccessResponse(),
		)
		tx := NewMongoTxManager(mt.Client)

		err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
			_, err := mt.Coll.InsertOne(ctx, bson.D{{Key: "partnerOrderId", Value: "INSABCDEFGHIJ"}})
			return err
		})
		require.Error(mt, err)
		assert.NotContains(mt, commandNames(mt), "commitTransaction")
	})

	mt.Run("sends nothing when no write happened", func(mt *mtest.T) {
		tx := NewMongoTxManager(mt.Client)
		errEarly := errors.New("nothing to do")

		err := tx.WithTransaction(context.Background(), func(context.Context) error {
			return errEarly
		})
		assert.ErrorIs(mt, err, errEarly)
		assert.Empty(mt, commandNames(mt))
	})
}
