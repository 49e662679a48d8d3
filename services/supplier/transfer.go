package supplier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"travelhub/models"
)

// TransferSupplier wraps transfer availability and its master data.
type TransferSupplier struct {
	client *Client
}

func NewTransferSupplier(client *Client) *TransferSupplier {
	return &TransferSupplier{client: client}
}

type transferAvailabilityResponse struct {
	Services []struct {
		ID           int    `json:"id"`
		Direction    string `json:"direction"`
		TransferType string `json:"transferType"`
		Vehicle      struct {
			Name string `json:"name"`
		} `json:"vehicle"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
		RateKey        string `json:"rateKey"`
		MinPaxCapacity int    `json:"minPaxCapacity"`
		MaxPaxCapacity int    `json:"maxPaxCapacity"`
		Price          struct {
			TotalAmount float64 `json:"totalAmount"`
			CurrencyID  string  `json:"currencyId"`
		} `json:"price"`
	} `json:"services"`
}

// Availability returns one-way transfer services for the route.
func (s *TransferSupplier) Availability(ctx context.Context, req models.TransferSearchRequest) ([]models.TransferResult, error) {
	language := req.Language
	if language == "" {
		language = "en"
	}
	path := fmt.Sprintf("/transfer-api/1.0/availability/%s/from/%s/%s/to/%s/%s/%s/%d/%d/%d",
		language,
		req.FromType, url.PathEscape(req.FromCode),
		req.ToType, url.PathEscape(req.ToCode),
		req.Outbound, req.Adults, req.Children, req.Infants)

	var resp transferAvailabilityResponse
	if err := s.client.Do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}

	results := make([]models.TransferResult, 0, len(resp.Services))
	for _, svc := range resp.Services {
		results = append(results, models.TransferResult{
			ID:           svc.ID,
			Direction:    svc.Direction,
			TransferType: svc.TransferType,
			Vehicle:      svc.Vehicle.Name,
			Category:     svc.Category.Name,
			RateKey:      svc.RateKey,
			MinPax:       svc.MinPaxCapacity,
			MaxPax:       svc.MaxPaxCapacity,
			TotalAmount:  svc.Price.TotalAmount,
			Currency:     svc.Price.CurrencyID,
		})
	}
	return results, nil
}

// Countries lists the countries transfers operate in.
func (s *TransferSupplier) Countries(ctx context.Context, language string) ([]models.TransferCountry, error) {
	query := url.Values{"fields": {"ALL"}, "language": {orDefault(language, "en")}}
	countries := []models.TransferCountry{}
	if err := s.client.Do(ctx, http.MethodGet, "/transfer-cache-api/1.0/locations/countries", query, nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Terminals lists airports and ports, optionally restricted to countryCodes.
func (s *TransferSupplier) Terminals(ctx context.Context, language string, countryCodes []string) ([]models.TransferTerminal, error) {
	query := url.Values{"fields": {"ALL"}, "language": {orDefault(language, "en")}}
	if len(countryCodes) > 0 {
		query.Set("countryCodes", strings.Join(countryCodes, ","))
	}

	var raw []struct {
		Code        string `json:"code"`
		Type        string `json:"type"`
		CountryCode string `json:"countryCode"`
		Content     struct {
			Description string `json:"description"`
		} `json:"content"`
	}
	if err := s.client.Do(ctx, http.MethodGet, "/transfer-cache-api/1.0/locations/terminals", query, nil, &raw); err != nil {
		return nil, err
	}

	terminals := make([]models.TransferTerminal, 0, len(raw))
	for _, t := range raw {
		terminals = append(terminals, models.TransferTerminal{
			Code:        t.Code,
			Type:        t.Type,
			CountryCode: t.CountryCode,
			Name:        t.Content.Description,
		})
	}
	return terminals, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
