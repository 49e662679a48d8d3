package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique entity id index.
func (r *MongoRatingRepo) EnsureIndexes(ctx context.Context) error {
	return ensureUnique(ctx, r.coll, "id")
}

// EnsureIndexes keeps a single structure document per vertical.
func (r *MongoStructureRepo) EnsureIndexes(ctx context.Context) error {
	return ensureUnique(ctx, r.coll, "vertical")
}

func ensureUnique(ctx context.Context, coll *mongo.Collection, field string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_" + field),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create index on %s.%s: %w", coll.Name(), field, err)
	}
	return nil
}
