package search

import (
	"context"
	"strings"

	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"go.uber.org/zap"
)

func (s *Service) SearchTransfers(ctx context.Context, req models.TransferSearchRequest) (*Result[models.TransferResult], error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	transfers, err := s.transfers.Availability(ctx, req)
	if err != nil {
		return nil, err
	}
	key, err := s.transferCache.Store(ctx, transfers)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Transfer search cached",
		zap.String("searchId", key),
		zap.String("from", req.FromCode),
		zap.String("to", req.ToCode),
		zap.Int("services", len(transfers)))

	return &Result[models.TransferResult]{SearchID: key, Page: firstPage(transfers)}, nil
}

func (s *Service) FilterTransfers(ctx context.Context, filter models.SearchFilter) (*Result[models.TransferResult], error) {
	normalizePaging(&filter)
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	transfers, err := s.transferCache.Retrieve(ctx, filter.SearchID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.TransferResult, 0, len(transfers))
	for _, t := range transfers {
		if !filter.PriceInRange(t.TotalAmount) {
			continue
		}
		if filter.Vehicle != "" && !strings.EqualFold(t.Vehicle, filter.Vehicle) {
			continue
		}
		matched = append(matched, t)
	}

	page, err := pagination.PaginateResults(matched, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}
	return &Result[models.TransferResult]{SearchID: filter.SearchID, Page: page}, nil
}

func (s *Service) TransferCountries(ctx context.Context, language string) ([]models.TransferCountry, error) {
	return s.transfers.Countries(ctx, language)
}

func (s *Service) TransferTerminals(ctx context.Context, language string, countryCodes []string) ([]models.TransferTerminal, error) {
	return s.transfers.Terminals(ctx, language, countryCodes)
}
