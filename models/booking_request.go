// models/booking_request.go
package models

// HotelBookingRequest books a rate returned by a hotel search.
type HotelBookingRequest struct {
	HotelID     string                 `json:"hotelId" validate:"required"`
	BookHash    string                 `json:"bookHash" validate:"required"` // rate identifier from the search
	Checkin     string                 `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout    string                 `json:"checkout" validate:"required,datetime=2006-01-02"`
	Language    string                 `json:"language" validate:"omitempty,len=2"`
	PaymentType string                 `json:"paymentType" validate:"omitempty,oneof=deposit hotel now"`
	Contact     Contact                `json:"contact"`
	Guests      []Guest                `json:"guests" validate:"required,min=1,dive"`
	Payment     map[string]interface{} `json:"payment,omitempty"`
	UserIP      string                 `json:"-"`
}

// ActivityBookingRequest books an activity rate key.
type ActivityBookingRequest struct {
	ActivityCode string                 `json:"activityCode" validate:"required"`
	RateKey      string                 `json:"rateKey" validate:"required"`
	From         string                 `json:"from" validate:"required,datetime=2006-01-02"`
	To           string                 `json:"to" validate:"required,datetime=2006-01-02"`
	Language     string                 `json:"language" validate:"omitempty,len=2"`
	Contact      Contact                `json:"contact"`
	Guests       []Guest                `json:"guests" validate:"required,min=1,dive"`
	Payment      map[string]interface{} `json:"payment,omitempty"`
}

// CruiseBookingRequest books cabins on a stored cruise package.
type CruiseBookingRequest struct {
	PackageID string                 `json:"packageId" validate:"required"`
	CabinType string                 `json:"cabinType"`
	Contact   Contact                `json:"contact"`
	Guests    []Guest                `json:"guests" validate:"required,min=1,dive"`
	Payment   map[string]interface{} `json:"payment,omitempty"`
}

// HolidayBookingRequest books a stored holiday package.
type HolidayBookingRequest struct {
	PackageID string                 `json:"packageId" validate:"required"`
	StartDate string                 `json:"startDate" validate:"required,datetime=2006-01-02"`
	Contact   Contact                `json:"contact"`
	Guests    []Guest                `json:"guests" validate:"required,min=1,dive"`
	Payment   map[string]interface{} `json:"payment,omitempty"`
}

// InsuranceBookingRequest buys a policy of a stored plan. TravellerType,
// AgeGroup and Country must exist in the insurance master config.
type InsuranceBookingRequest struct {
	PlanID        string                 `json:"planId" validate:"required"`
	TravellerType string                 `json:"travellerType" validate:"required"`
	AgeGroup      string                 `json:"ageGroup" validate:"required"`
	Country       string                 `json:"country" validate:"required,len=2"`
	StartDate     string                 `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string                 `json:"endDate" validate:"required,datetime=2006-01-02"`
	Contact       Contact                `json:"contact"`
	Travellers    []Guest                `json:"travellers" validate:"required,min=1,dive"`
	Payment       map[string]interface{} `json:"payment,omitempty"`
}
