package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"travelhub/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo[T any, P Item[T]] struct {
	coll       *mongo.Collection
	textFields []string
}

// NewMongoInventoryRepo creates a repository over collection. textFields are
// covered by the collection's text index.
func NewMongoInventoryRepo[T any, P Item[T]](db *mongo.Database, collection string, textFields ...string) *MongoInventoryRepo[T, P] {
	return &MongoInventoryRepo[T, P]{coll: db.Collection(collection), textFields: textFields}
}

func (r *MongoInventoryRepo[T, P]) Create(ctx context.Context, item *T) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create %s document: %w", r.coll.Name(), database.Translate(err))
	}
	return nil
}

func (r *MongoInventoryRepo[T, P]) Replace(ctx context.Context, item *T) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id := P(item).Meta().ID
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": id}, item)
	if err != nil {
		return fmt.Errorf("failed to update %s document %s: %w", r.coll.Name(), id, database.Translate(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s document %s: %w", r.coll.Name(), id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoInventoryRepo[T, P]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s document %s: %w", r.coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s document %s: %w", r.coll.Name(), id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoInventoryRepo[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item T
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to fetch %s document %s: %w", r.coll.Name(), id, database.Translate(err))
	}
	return &item, nil
}

func (r *MongoInventoryRepo[T, P]) List(ctx context.Context, query string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if query != "" && len(r.textFields) > 0 {
		filter["$text"] = bson.M{"$search": query}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.coll.Name(), err)
	}
	return items, nil
}

func (r *MongoInventoryRepo[T, P]) AddImage(ctx context.Context, id, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"images": url},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add image to %s document %s: %w", r.coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s document %s: %w", r.coll.Name(), id, database.ErrNotFound)
	}
	return nil
}
