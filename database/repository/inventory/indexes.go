package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique id index and the free-text index.
func (r *MongoInventoryRepo[T, P]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("created_idx"),
		},
	}
	if len(r.textFields) > 0 {
		keys := bson.D{}
		for _, f := range r.textFields {
			keys = append(keys, bson.E{Key: f, Value: "text"})
		}
		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetName("text_idx"),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", r.coll.Name(), err)
	}
	return nil
}
