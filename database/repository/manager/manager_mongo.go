package managerRepo

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

// MongoManagerRepo implements ManagerRepository using MongoDB.
type MongoManagerRepo struct {
	coll *mongo.Collection
}

func NewMongoManagerRepo(db *mongo.Database) *MongoManagerRepo {
	return &MongoManagerRepo{coll: db.Collection("managers")}
}

func (r *MongoManagerRepo) Upsert(ctx context.Context, m *models.Manager) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": m.ID}, m, opts); err != nil {
		return fmt.Errorf("failed to upsert manager %s: %w", m.ID, database.Translate(err))
	}
	return nil
}

func (r *MongoManagerRepo) GetByID(ctx context.Context, id string) (*models.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.Manager
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to fetch manager %s: %w", id, database.Translate(err))
	}
	return &m, nil
}

func (r *MongoManagerRepo) GetAll(ctx context.Context) ([]models.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer cursor.Close(ctx)

	managers := []models.Manager{}
	if err := cursor.All(ctx, &managers); err != nil {
		return nil, fmt.Errorf("failed to decode managers: %w", err)
	}
	return managers, nil
}

func (r *MongoManagerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create manager indexes: %w", err)
	}
	return nil
}
