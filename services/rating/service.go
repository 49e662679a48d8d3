package rating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	ratingRepo "travelhub/database/repository/rating"
	"travelhub/models"
	"travelhub/services/pagination"

	"go.uber.org/zap"
)

// MaxTotalWeight bounds the sum of rating weights of one submission.
const MaxTotalWeight = 100

// Service maintains halal ratings per entity and the rating-category
// structure per vertical.
type Service struct {
	ratings    map[string]ratingRepo.RatingRepository
	structures ratingRepo.StructureRepository
	logger     *zap.Logger
}

// NewService takes one rating repository per rated vertical.
func NewService(ratings map[string]ratingRepo.RatingRepository, structures ratingRepo.StructureRepository, logger *zap.Logger) *Service {
	return &Service{ratings: ratings, structures: structures, logger: logger}
}

func (s *Service) repo(vertical string) (ratingRepo.RatingRepository, error) {
	repo, ok := s.ratings[vertical]
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s does not support ratings", vertical))
	}
	return repo, nil
}

// TotalWeight sums the weights of ratings after checking each one.
func TotalWeight(ratings []models.Rating) (int, error) {
	if len(ratings) == 0 {
		return 0, apperr.Validation("ratings must not be empty")
	}
	seen := make(map[string]bool, len(ratings))
	total := 0
	for i, r := range ratings {
		if r.Name == "" {
			return 0, apperr.Validation(fmt.Sprintf("ratings[%d].name is required", i))
		}
		if r.Weight < 0 || r.Weight > MaxTotalWeight {
			return 0, apperr.Validation(fmt.Sprintf("ratings[%d].weight must be between 0 and %d", i, MaxTotalWeight))
		}
		if seen[r.Name] {
			return 0, apperr.Validation(fmt.Sprintf("rating %q is listed twice", r.Name))
		}
		seen[r.Name] = true
		total += r.Weight
	}
	if total > MaxTotalWeight {
		return 0, apperr.RatingOverflow(total)
	}
	return total, nil
}

// Rate inserts or fully replaces the rating of entityID. An overflowing
// submission leaves any stored rating untouched.
func (s *Service) Rate(ctx context.Context, vertical, entityID, principalID string, ratings []models.Rating) (*models.RatingInfo, error) {
	repo, err := s.repo(vertical)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		return nil, apperr.Validation("id is required")
	}
	total, err := TotalWeight(ratings)
	if err != nil {
		return nil, err
	}

	info := &models.RatingInfo{
		ID:         entityID,
		Ratings:    ratings,
		StarRating: total,
		UpdatedBy:  principalID,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, info); err != nil {
		s.logger.Error("Failed to upsert rating",
			zap.String("vertical", vertical),
			zap.String("id", entityID),
			zap.Error(err))
		return nil, apperr.Persistence("failed to save rating", err)
	}

	s.logger.Info("Rating saved",
		zap.String("vertical", vertical),
		zap.String("id", entityID),
		zap.Int("star_rating", total))
	return info, nil
}

// RateStructure replaces the canonical rating categories of a vertical.
func (s *Service) RateStructure(ctx context.Context, vertical, principalID string, categories []models.Rating) (*models.RatingStructure, error) {
	if _, err := s.repo(vertical); err != nil {
		return nil, err
	}
	total, err := TotalWeight(categories)
	if err != nil {
		return nil, err
	}

	structure := &models.RatingStructure{
		Vertical:    vertical,
		Categories:  categories,
		TotalWeight: total,
		UpdatedBy:   principalID,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.structures.Upsert(ctx, structure); err != nil {
		s.logger.Error("Failed to upsert rating structure", zap.String("vertical", vertical), zap.Error(err))
		return nil, apperr.Persistence("failed to save rating structure", err)
	}
	return structure, nil
}

func (s *Service) GetStructure(ctx context.Context, vertical string) (*models.RatingStructure, error) {
	if _, err := s.repo(vertical); err != nil {
		return nil, err
	}
	structure, err := s.structures.Get(ctx, vertical)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("no rating structure defined for %s", vertical)
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load rating structure", err)
	}
	return structure, nil
}

func (s *Service) GetOne(ctx context.Context, vertical, entityID string) (*models.RatingInfo, error) {
	repo, err := s.repo(vertical)
	if err != nil {
		return nil, err
	}
	info, err := repo.GetByID(ctx, entityID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("no rating found for %s %s", vertical, entityID)
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load rating", err)
	}
	return info, nil
}

// GetAll pages through every rating of a vertical ordered by entity id.
func (s *Service) GetAll(ctx context.Context, vertical string, page, pageSize int) (pagination.Page[models.RatingInfo], error) {
	repo, err := s.repo(vertical)
	if err != nil {
		return pagination.Page[models.RatingInfo]{}, err
	}
	infos, err := repo.GetAll(ctx)
	if err != nil {
		return pagination.Page[models.RatingInfo]{}, apperr.Persistence("failed to load ratings", err)
	}
	return pagination.PaginateResults(infos, page, pageSize)
}

// Merge returns the stored ratings of ids keyed by entity id. Entities
// without a rating are absent from the map.
func (s *Service) Merge(ctx context.Context, vertical string, ids []string) (map[string]models.RatingInfo, error) {
	repo, err := s.repo(vertical)
	if err != nil {
		return nil, err
	}
	infos, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Persistence("failed to load ratings", err)
	}
	byID := make(map[string]models.RatingInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}
	return byID, nil
}
