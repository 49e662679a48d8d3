package supplier

import (
	"context"
	"fmt"
	"net/http"

	"travelhub/models"
)

const (
	activityAvailabilityPath = "/activity-api/3.0/activities/availability"
	activityPreconfirmPath   = "/activity-api/3.0/bookings/preconfirm"
	activityBookingsPath     = "/activity-api/3.0/bookings"
)

// ActivitySupplier wraps the signed activity availability and booking API.
type ActivitySupplier struct {
	client *Client
}

func NewActivitySupplier(client *Client) *ActivitySupplier {
	return &ActivitySupplier{client: client}
}

type activityPax struct {
	Age     int    `json:"age"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Type    string `json:"type,omitempty"`
}

type activityAvailabilityResponse struct {
	Activities []struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		Type         string `json:"type"`
		CurrencyName string `json:"currency"`
		AmountsFrom  []struct {
			PaxType string  `json:"paxType"`
			Amount  float64 `json:"amount"`
		} `json:"amountsFrom"`
		Modalities []struct {
			Code  string `json:"code"`
			Name  string `json:"name"`
			Rates []struct {
				RateClass   string `json:"rateClass"`
				RateDetails []struct {
					RateKey     string `json:"rateKey"`
					TotalAmount struct {
						Amount float64 `json:"amount"`
					} `json:"totalAmount"`
				} `json:"rateDetails"`
			} `json:"rates"`
		} `json:"modalities"`
	} `json:"activities"`
}

// Availability lists the bookable activities of a destination between from and to.
func (s *ActivitySupplier) Availability(ctx context.Context, req models.ActivitySearchRequest) ([]models.ActivityResult, error) {
	paxes := make([]activityPax, 0, req.Adults+len(req.ChildrenAges))
	for i := 0; i < req.Adults; i++ {
		paxes = append(paxes, activityPax{Age: 30})
	}
	for _, age := range req.ChildrenAges {
		paxes = append(paxes, activityPax{Age: age})
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	body := map[string]interface{}{
		"filters": []map[string]interface{}{{
			"searchFilterItems": []map[string]string{{"type": "destination", "value": req.Destination}},
		}},
		"from":       req.From,
		"to":         req.To,
		"language":   language,
		"paxes":      paxes,
		"pagination": map[string]int{"itemsPerPage": 100, "page": 1},
		"order":      "DEFAULT",
	}

	var resp activityAvailabilityResponse
	if err := s.client.Do(ctx, http.MethodPost, activityAvailabilityPath, nil, body, &resp); err != nil {
		return nil, err
	}

	results := make([]models.ActivityResult, 0, len(resp.Activities))
	for _, a := range resp.Activities {
		result := models.ActivityResult{
			Code:       a.Code,
			Name:       a.Name,
			Type:       a.Type,
			Currency:   a.CurrencyName,
			Modalities: make([]models.ActivityModality, 0, len(a.Modalities)),
		}
		for _, amt := range a.AmountsFrom {
			if amt.PaxType == "ADULT" || result.FromAmount == 0 {
				result.FromAmount = amt.Amount
			}
		}
		for _, m := range a.Modalities {
			modality := models.ActivityModality{Code: m.Code, Name: m.Name}
			for _, r := range m.Rates {
				for _, d := range r.RateDetails {
					modality.Rates = append(modality.Rates, models.ActivityRate{
						RateKey:     d.RateKey,
						RateClass:   r.RateClass,
						TotalAmount: d.TotalAmount.Amount,
					})
				}
			}
			result.Modalities = append(result.Modalities, modality)
		}
		results = append(results, result)
	}
	return results, nil
}

// ActivityBookingRequest carries caller-supplied holder and pax details.
type ActivityBookingRequest struct {
	ClientReference string
	Language        string
	RateKey         string
	From            string
	To              string
	Holder          models.Contact
	Guests          []models.Guest
}

// ActivityBooking is the supplier's view of a booking.
type ActivityBooking struct {
	Reference     string  `json:"reference"`
	Status        string  `json:"status"`
	Currency      string  `json:"currency"`
	TotalNet      float64 `json:"totalNet"`
	PendingAmount float64 `json:"pendingAmount"`
}

type activityBookingResponse struct {
	Booking ActivityBooking `json:"booking"`
}

func (r *activityBookingResponse) SupplierStatus() (bool, string) {
	switch r.Booking.Status {
	case "CONFIRMED", "PRECONFIRMED":
		return true, ""
	default:
		return false, fmt.Sprintf("booking status %q", r.Booking.Status)
	}
}

func (req ActivityBookingRequest) body() map[string]interface{} {
	paxes := make([]activityPax, 0, len(req.Guests))
	for _, g := range req.Guests {
		paxes = append(paxes, activityPax{Age: g.Age, Name: g.FirstName, Surname: g.LastName, Type: g.Type})
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	return map[string]interface{}{
		"language":        language,
		"clientReference": req.ClientReference,
		"holder": map[string]interface{}{
			"name":       req.Holder.FirstName,
			"surname":    req.Holder.LastName,
			"email":      req.Holder.Email,
			"telephones": []string{req.Holder.Phone},
		},
		"activities": []map[string]interface{}{{
			"rateKey": req.RateKey,
			"from":    req.From,
			"to":      req.To,
			"paxes":   paxes,
		}},
	}
}

// Preconfirm holds the rate with the supplier.
func (s *ActivitySupplier) Preconfirm(ctx context.Context, req ActivityBookingRequest) (*ActivityBooking, error) {
	var resp activityBookingResponse
	if err := s.client.Do(ctx, http.MethodPost, activityPreconfirmPath, nil, req.body(), &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}

// Confirm finalizes the booking held by Preconfirm.
func (s *ActivitySupplier) Confirm(ctx context.Context, req ActivityBookingRequest) (*ActivityBooking, error) {
	var resp activityBookingResponse
	if err := s.client.Do(ctx, http.MethodPut, activityBookingsPath, nil, req.body(), &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}
