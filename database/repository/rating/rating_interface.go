package ratingRepo

import (
	"context"

	"travelhub/models"
)

// RatingRepository stores halal ratings of one vertical, keyed by entity id.
type RatingRepository interface {
	// Upsert inserts the rating or fully replaces the existing one.
	Upsert(ctx context.Context, info *models.RatingInfo) error
	GetByID(ctx context.Context, id string) (*models.RatingInfo, error)
	// GetAll returns every rating ordered by id.
	GetAll(ctx context.Context) ([]models.RatingInfo, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.RatingInfo, error)
	EnsureIndexes(ctx context.Context) error
}

// StructureRepository stores the rating-category schema, one per vertical.
type StructureRepository interface {
	Upsert(ctx context.Context, structure *models.RatingStructure) error
	Get(ctx context.Context, vertical string) (*models.RatingStructure, error)
	EnsureIndexes(ctx context.Context) error
}
