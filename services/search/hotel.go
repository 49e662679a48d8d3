package search

import (
	"context"

	"travelhub/apperr"
	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"go.uber.org/zap"
)

// SearchHotels queries the hotel supplier for a region and caches the result set.
func (s *Service) SearchHotels(ctx context.Context, req models.HotelSearchRequest) (*Result[models.HotelResult], error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Checkout <= req.Checkin {
		return nil, apperr.Validation("checkout must be after checkin")
	}

	hotels, err := s.hotels.SearchRegion(ctx, req)
	if err != nil {
		return nil, err
	}
	key, err := s.hotelCache.Store(ctx, hotels)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Hotel search cached",
		zap.String("searchId", key),
		zap.Int("regionId", req.RegionID),
		zap.Int("hotels", len(hotels)))

	page := firstPage(hotels)
	s.attachHotelRatings(ctx, page.Items)
	return &Result[models.HotelResult]{SearchID: key, Page: page}, nil
}

// FilterHotels re-slices a cached hotel search.
func (s *Service) FilterHotels(ctx context.Context, filter models.SearchFilter) (*Result[models.HotelResult], error) {
	normalizePaging(&filter)
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	hotels, err := s.hotelCache.Retrieve(ctx, filter.SearchID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.HotelResult, 0, len(hotels))
	for _, h := range hotels {
		rates := make([]models.HotelRate, 0, len(h.Rates))
		for _, r := range h.Rates {
			if !filter.PriceInRange(r.Amount) {
				continue
			}
			if filter.Meal != "" && r.Meal != filter.Meal {
				continue
			}
			rates = append(rates, r)
		}
		if len(rates) == 0 {
			continue
		}
		h.Rates = rates
		matched = append(matched, h)
	}

	s.attachHotelRatings(ctx, matched)
	if filter.MinHalalRating > 0 {
		rated := matched[:0]
		for _, h := range matched {
			if h.HalalRating != nil && h.HalalRating.StarRating >= filter.MinHalalRating {
				rated = append(rated, h)
			}
		}
		matched = rated
	}

	page, err := pagination.PaginateResults(matched, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}
	return &Result[models.HotelResult]{SearchID: filter.SearchID, Page: page}, nil
}

// HotelInfo returns the supplier's static content for one hotel with its rating.
func (s *Service) HotelInfo(ctx context.Context, hotelID, language string) (map[string]interface{}, error) {
	if hotelID == "" {
		return nil, apperr.Validation("hotel id is required")
	}
	if language == "" {
		language = "en"
	}
	info, err := s.hotels.HotelInfo(ctx, hotelID, language)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = map[string]interface{}{}
	}
	ratings, err := s.ratings.Merge(ctx, models.VerticalHotel, []string{hotelID})
	if err != nil {
		s.logger.Warn("Failed to merge hotel rating", zap.String("hotelId", hotelID), zap.Error(err))
	} else if r, ok := ratings[hotelID]; ok {
		info["halalRating"] = r
	}
	return info, nil
}

// attachHotelRatings sets HalalRating in place. Rating lookups never fail a
// search; missing ratings are logged.
func (s *Service) attachHotelRatings(ctx context.Context, hotels []models.HotelResult) {
	if len(hotels) == 0 {
		return
	}
	ids := make([]string, len(hotels))
	for i, h := range hotels {
		ids[i] = h.ID
	}
	ratings, err := s.ratings.Merge(ctx, models.VerticalHotel, ids)
	if err != nil {
		s.logger.Warn("Failed to merge hotel ratings", zap.Error(err))
		return
	}
	for i := range hotels {
		if r, ok := ratings[hotels[i].ID]; ok {
			r := r
			hotels[i].HalalRating = &r
		}
	}
}
