package ratingRepo

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

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo creates a repository over collection, e.g. "hotel_ratings".
func NewMongoRatingRepo(db *mongo.Database, collection string) *MongoRatingRepo {
	return &MongoRatingRepo{coll: db.Collection(collection)}
}

// Upsert relies on the store's atomic replace-with-upsert; concurrent writers
// on the same id are last-writer-wins.
func (r *MongoRatingRepo) Upsert(ctx context.Context, info *models.RatingInfo) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": info.ID}, info, opts); err != nil {
		return fmt.Errorf("failed to upsert rating %s: %w", info.ID, database.Translate(err))
	}
	return nil
}

func (r *MongoRatingRepo) GetByID(ctx context.Context, id string) (*models.RatingInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var info models.RatingInfo
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to fetch rating %s: %w", id, database.Translate(err))
	}
	return &info, nil
}

func (r *MongoRatingRepo) GetAll(ctx context.Context) ([]models.RatingInfo, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRatingRepo) GetByIDs(ctx context.Context, ids []string) ([]models.RatingInfo, error) {
	if len(ids) == 0 {
		return []models.RatingInfo{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *MongoRatingRepo) find(ctx context.Context, filter bson.M) ([]models.RatingInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ratings: %w", err)
	}
	defer cursor.Close(ctx)

	infos := []models.RatingInfo{}
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return infos, nil
}

// MongoStructureRepo implements StructureRepository using MongoDB.
type MongoStructureRepo struct {
	coll *mongo.Collection
}

func NewMongoStructureRepo(db *mongo.Database) *MongoStructureRepo {
	return &MongoStructureRepo{coll: db.Collection("rating_structures")}
}

func (r *MongoStructureRepo) Upsert(ctx context.Context, structure *models.RatingStructure) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"vertical": structure.Vertical}
	if _, err := r.coll.ReplaceOne(ctx, filter, structure, opts); err != nil {
		return fmt.Errorf("failed to upsert %s rating structure: %w", structure.Vertical, database.Translate(err))
	}
	return nil
}

func (r *MongoStructureRepo) Get(ctx context.Context, vertical string) (*models.RatingStructure, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var structure models.RatingStructure
	if err := r.coll.FindOne(ctx, bson.M{"vertical": vertical}).Decode(&structure); err != nil {
		return nil, fmt.Errorf("failed to fetch %s rating structure: %w", vertical, database.Translate(err))
	}
	return &structure, nil
}
