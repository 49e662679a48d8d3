package supplier

import (
	"context"
	"net/http"
	"strconv"

	"travelhub/models"
)

const (
	hotelSearchRegionPath  = "/api/b2b/v3/search/serp/region/"
	hotelInfoPath          = "/api/b2b/v3/hotel/info/"
	hotelBookingFormPath   = "/api/b2b/v3/hotel/order/booking/form/"
	hotelBookingFinishPath = "/api/b2b/v3/hotel/order/booking/finish/"
)

// hotelEnvelope is the hotel supplier's {status, error, data} wrapper.
type hotelEnvelope[T any] struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Data   T      `json:"data"`
}

func (e *hotelEnvelope[T]) SupplierStatus() (bool, string) {
	if e.Status == "ok" {
		return true, ""
	}
	if e.Error != "" {
		return false, e.Error
	}
	return false, "status " + e.Status
}

// HotelSupplier wraps the hotel content and booking API.
type HotelSupplier struct {
	client *Client
}

func NewHotelSupplier(client *Client) *HotelSupplier {
	return &HotelSupplier{client: client}
}

type hotelGuests struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children"`
}

type hotelSearchBody struct {
	Checkin   string        `json:"checkin"`
	Checkout  string        `json:"checkout"`
	Residency string        `json:"residency,omitempty"`
	Language  string        `json:"language,omitempty"`
	Guests    []hotelGuests `json:"guests"`
	RegionID  int           `json:"region_id"`
	Currency  string        `json:"currency,omitempty"`
}

type hotelPaymentType struct {
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	ShowAmount   string `json:"show_amount"`
	CurrencyCode string `json:"currency_code"`
}

type hotelSearchData struct {
	Hotels []struct {
		ID    string `json:"id"`
		Rates []struct {
			BookHash       string `json:"book_hash"`
			MatchHash      string `json:"match_hash"`
			RoomName       string `json:"room_name"`
			Meal           string `json:"meal"`
			PaymentOptions struct {
				PaymentTypes []hotelPaymentType `json:"payment_types"`
			} `json:"payment_options"`
		} `json:"rates"`
	} `json:"hotels"`
}

// SearchRegion returns every hotel with availability in the region.
func (s *HotelSupplier) SearchRegion(ctx context.Context, req models.HotelSearchRequest) ([]models.HotelResult, error) {
	children := req.ChildrenAges
	if children == nil {
		children = []int{}
	}
	body := hotelSearchBody{
		Checkin:   req.Checkin,
		Checkout:  req.Checkout,
		Residency: req.Residency,
		Language:  req.Language,
		Guests:    []hotelGuests{{Adults: req.Adults, Children: children}},
		RegionID:  req.RegionID,
		Currency:  req.Currency,
	}

	var env hotelEnvelope[hotelSearchData]
	if err := s.client.Do(ctx, http.MethodPost, hotelSearchRegionPath, nil, body, &env); err != nil {
		return nil, err
	}

	results := make([]models.HotelResult, 0, len(env.Data.Hotels))
	for _, h := range env.Data.Hotels {
		result := models.HotelResult{ID: h.ID, Rates: make([]models.HotelRate, 0, len(h.Rates))}
		for i, r := range h.Rates {
			rate := models.HotelRate{
				BookHash:  r.BookHash,
				MatchHash: r.MatchHash,
				RoomName:  r.RoomName,
				Meal:      r.Meal,
			}
			if len(r.PaymentOptions.PaymentTypes) > 0 {
				pt := r.PaymentOptions.PaymentTypes[0]
				rate.Amount = parseAmount(pt.ShowAmount, pt.Amount)
				rate.Currency = pt.CurrencyCode
				rate.PaymentType = pt.Type
			}
			result.Rates = append(result.Rates, rate)
			if i == 0 || rate.Amount < result.MinPrice {
				result.MinPrice = rate.Amount
				result.Currency = rate.Currency
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// HotelInfo returns the static content of a hotel.
func (s *HotelSupplier) HotelInfo(ctx context.Context, hotelID, language string) (map[string]interface{}, error) {
	body := map[string]string{"id": hotelID, "language": language}
	var env hotelEnvelope[map[string]interface{}]
	if err := s.client.Do(ctx, http.MethodPost, hotelInfoPath, nil, body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// HotelBookingForm is what the form step hands on to the finish step.
type HotelBookingForm struct {
	OrderID      int64                    `json:"order_id"`
	ItemID       int64                    `json:"item_id"`
	PaymentTypes []map[string]interface{} `json:"payment_types"`
	UpsellData   []map[string]interface{} `json:"upsell_data,omitempty"`
}

// BookingForm reserves the rate identified by bookHash under partnerOrderID.
func (s *HotelSupplier) BookingForm(ctx context.Context, partnerOrderID, bookHash, language, userIP string) (*HotelBookingForm, error) {
	body := map[string]string{
		"partner_order_id": partnerOrderID,
		"book_hash":        bookHash,
		"language":         language,
		"user_ip":          userIP,
	}
	var env hotelEnvelope[HotelBookingForm]
	if err := s.client.Do(ctx, http.MethodPost, hotelBookingFormPath, nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

type HotelFinishGuest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsChild   bool   `json:"is_child,omitempty"`
	Age       int    `json:"age,omitempty"`
}

type HotelFinishRoom struct {
	Guests []HotelFinishGuest `json:"guests"`
}

// HotelFinishRequest completes a booking started by BookingForm.
type HotelFinishRequest struct {
	PartnerOrderID string
	Language       string
	Contact        models.Contact
	Rooms          []HotelFinishRoom
	PaymentType    map[string]interface{}
	UpsellData     []map[string]interface{}
}

func (s *HotelSupplier) BookingFinish(ctx context.Context, req HotelFinishRequest) error {
	body := map[string]interface{}{
		"user": map[string]string{
			"email":   req.Contact.Email,
			"phone":   req.Contact.Phone,
			"comment": req.Contact.Comment,
		},
		"supplier_data": map[string]string{
			"first_name_original": req.Contact.FirstName,
			"last_name_original":  req.Contact.LastName,
			"phone":               req.Contact.Phone,
			"email":               req.Contact.Email,
		},
		"partner": map[string]string{
			"partner_order_id": req.PartnerOrderID,
			"comment":          req.Contact.Comment,
		},
		"language":     req.Language,
		"rooms":        req.Rooms,
		"payment_type": req.PaymentType,
	}
	if len(req.UpsellData) > 0 {
		body["upsell_data"] = req.UpsellData
	}

	var env hotelEnvelope[interface{}]
	return s.client.Do(ctx, http.MethodPost, hotelBookingFinishPath, nil, body, &env)
}

func parseAmount(values ...string) float64 {
	for _, v := range values {
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
