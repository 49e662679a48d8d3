package search

import (
	"context"

	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/services/searchcache"
	"travelhub/utils"

	"go.uber.org/zap"
)

type HotelSearcher interface {
	SearchRegion(ctx context.Context, req models.HotelSearchRequest) ([]models.HotelResult, error)
	HotelInfo(ctx context.Context, hotelID, language string) (map[string]interface{}, error)
}

type ActivitySearcher interface {
	Availability(ctx context.Context, req models.ActivitySearchRequest) ([]models.ActivityResult, error)
}

type TransferSearcher interface {
	Availability(ctx context.Context, req models.TransferSearchRequest) ([]models.TransferResult, error)
	Countries(ctx context.Context, language string) ([]models.TransferCountry, error)
	Terminals(ctx context.Context, language string, countryCodes []string) ([]models.TransferTerminal, error)
}

// RatingMerger looks up halal ratings for a batch of entity ids.
type RatingMerger interface {
	Merge(ctx context.Context, vertical string, ids []string) (map[string]models.RatingInfo, error)
}

// Result is the answer to a search: the key to filter by later plus the
// first page of results.
type Result[T any] struct {
	SearchID string `json:"searchId"`
	pagination.Page[T]
}

// Service runs supplier searches, caches their result sets and re-slices
// them on filter requests.
type Service struct {
	hotels     HotelSearcher
	activities ActivitySearcher
	transfers  TransferSearcher
	ratings    RatingMerger

	hotelCache    *searchcache.Cache[models.HotelResult]
	activityCache *searchcache.Cache[models.ActivityResult]
	transferCache *searchcache.Cache[models.TransferResult]

	logger *zap.Logger
}

type Options struct {
	Hotels        HotelSearcher
	Activities    ActivitySearcher
	Transfers     TransferSearcher
	Ratings       RatingMerger
	HotelCache    *searchcache.Cache[models.HotelResult]
	ActivityCache *searchcache.Cache[models.ActivityResult]
	TransferCache *searchcache.Cache[models.TransferResult]
	Logger        *zap.Logger
}

func NewService(opts Options) *Service {
	return &Service{
		hotels:        opts.Hotels,
		activities:    opts.Activities,
		transfers:     opts.Transfers,
		ratings:       opts.Ratings,
		hotelCache:    opts.HotelCache,
		activityCache: opts.ActivityCache,
		transferCache: opts.TransferCache,
		logger:        opts.Logger,
	}
}

// normalizePaging applies the default page and page size to a filter.
func normalizePaging(f *models.SearchFilter) {
	if f.Page == 0 {
		f.Page = utils.DefaultPage
	}
	if f.PageSize == 0 {
		f.PageSize = utils.DefaultPageSize
	}
	if f.PageSize > utils.MaxPageSize {
		f.PageSize = utils.MaxPageSize
	}
}

// firstPage is the opening page of a fresh result set.
func firstPage[T any](items []T) pagination.Page[T] {
	page, _ := pagination.PaginateResults(items, 1, utils.DefaultPageSize)
	return page
}
