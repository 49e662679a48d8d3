package insuranceRepo

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

const masterID = "master"

// MongoConfigRepo implements ConfigRepository using MongoDB.
type MongoConfigRepo struct {
	config  *mongo.Collection
	history *mongo.Collection
}

func NewMongoConfigRepo(db *mongo.Database) *MongoConfigRepo {
	return &MongoConfigRepo{
		config:  db.Collection("insurance_config"),
		history: db.Collection("insurance_config_history"),
	}
}

func (r *MongoConfigRepo) Get(ctx context.Context) (*models.InsuranceConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg models.InsuranceConfig
	if err := r.config.FindOne(ctx, bson.M{"_id": masterID}).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to fetch insurance config: %w", database.Translate(err))
	}
	return &cfg, nil
}

func (r *MongoConfigRepo) Replace(ctx context.Context, cfg *models.InsuranceConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.config.ReplaceOne(ctx, bson.M{"_id": masterID}, cfg, opts); err != nil {
		return fmt.Errorf("failed to replace insurance config: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoConfigRepo) AppendHistory(ctx context.Context, rev *models.InsuranceConfigRevision) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.history.InsertOne(ctx, rev); err != nil {
		return fmt.Errorf("failed to archive insurance config revision %d: %w", rev.Revision, database.Translate(err))
	}
	return nil
}

func (r *MongoConfigRepo) History(ctx context.Context) ([]models.InsuranceConfigRevision, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "revision", Value: -1}})
	cursor, err := r.history.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance config history: %w", err)
	}
	defer cursor.Close(ctx)

	revs := []models.InsuranceConfigRevision{}
	if err := cursor.All(ctx, &revs); err != nil {
		return nil, fmt.Errorf("failed to decode insurance config history: %w", err)
	}
	return revs, nil
}

// EnsureIndexes keeps one history entry per revision.
func (r *MongoConfigRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "revision", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_revision"),
	}
	if _, err := r.history.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create insurance history indexes: %w", err)
	}
	return nil
}
