package outboxRepo

import (
	"context"
	"fmt"
	"time"

	"travelhub/database"
	"travelhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOutboxRepo implements OutboxRepository using MongoDB.
type MongoOutboxRepo struct {
	coll *mongo.Collection
}

func NewMongoOutboxRepo(db *mongo.Database) *MongoOutboxRepo {
	return &MongoOutboxRepo{coll: db.Collection("booking_outbox")}
}

func (r *MongoOutboxRepo) Insert(ctx context.Context, ev *models.OutboxEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("failed to insert outbox event %s: %w", ev.ID, database.Translate(err))
	}
	return nil
}

func (r *MongoOutboxRepo) ListPending(ctx context.Context, limit int64) ([]models.OutboxEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"dispatchedAt": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending outbox events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.OutboxEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}
	return events, nil
}

func (r *MongoOutboxRepo) MarkDispatched(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"dispatchedAt": time.Now()}})
}

func (r *MongoOutboxRepo) IncrementAttempts(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{"$inc": bson.M{"attempts": 1}})
}

func (r *MongoOutboxRepo) update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update outbox event %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("outbox event %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoOutboxRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "dispatchedAt", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("pending_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create outbox indexes: %w", err)
	}
	return nil
}
