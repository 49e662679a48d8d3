package search

import (
	"context"

	"travelhub/apperr"
	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"go.uber.org/zap"
)

func (s *Service) SearchActivities(ctx context.Context, req models.ActivitySearchRequest) (*Result[models.ActivityResult], error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.To < req.From {
		return nil, apperr.Validation("to must not be before from")
	}

	activities, err := s.activities.Availability(ctx, req)
	if err != nil {
		return nil, err
	}
	key, err := s.activityCache.Store(ctx, activities)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Activity search cached",
		zap.String("searchId", key),
		zap.String("destination", req.Destination),
		zap.Int("activities", len(activities)))

	page := firstPage(activities)
	s.attachActivityRatings(ctx, page.Items)
	return &Result[models.ActivityResult]{SearchID: key, Page: page}, nil
}

func (s *Service) FilterActivities(ctx context.Context, filter models.SearchFilter) (*Result[models.ActivityResult], error) {
	normalizePaging(&filter)
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	activities, err := s.activityCache.Retrieve(ctx, filter.SearchID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.ActivityResult, 0, len(activities))
	for _, a := range activities {
		if filter.PriceInRange(a.FromAmount) {
			matched = append(matched, a)
		}
	}

	s.attachActivityRatings(ctx, matched)
	if filter.MinHalalRating > 0 {
		rated := matched[:0]
		for _, a := range matched {
			if a.HalalRating != nil && a.HalalRating.StarRating >= filter.MinHalalRating {
				rated = append(rated, a)
			}
		}
		matched = rated
	}

	page, err := pagination.PaginateResults(matched, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}
	return &Result[models.ActivityResult]{SearchID: filter.SearchID, Page: page}, nil
}

func (s *Service) attachActivityRatings(ctx context.Context, activities []models.ActivityResult) {
	if len(activities) == 0 {
		return
	}
	ids := make([]string, len(activities))
	for i, a := range activities {
		ids[i] = a.Code
	}
	ratings, err := s.ratings.Merge(ctx, models.VerticalActivity, ids)
	if err != nil {
		s.logger.Warn("Failed to merge activity ratings", zap.Error(err))
		return
	}
	for i := range activities {
		if r, ok := ratings[activities[i].Code]; ok {
			r := r
			activities[i].HalalRating = &r
		}
	}
}
