package models

// HotelSearchRequest is the query for a region-wide hotel availability search.
type HotelSearchRequest struct {
	RegionID     int    `form:"regionId" json:"regionId" validate:"gt=0"`
	Checkin      string `form:"checkin" json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout     string `form:"checkout" json:"checkout" validate:"required,datetime=2006-01-02"`
	Adults       int    `form:"adults" json:"adults" validate:"gte=1,lte=6"`
	ChildrenAges []int  `form:"children" json:"children" validate:"max=4,dive,gte=0,lte=17"`
	Residency    string `form:"residency" json:"residency" validate:"omitempty,len=2"`
	Currency     string `form:"currency" json:"currency" validate:"omitempty,len=3"`
	Language     string `form:"language" json:"language" validate:"omitempty,len=2"`
}

type HotelRate struct {
	BookHash    string  `json:"bookHash"`
	MatchHash   string  `json:"matchHash,omitempty"`
	RoomName    string  `json:"roomName"`
	Meal        string  `json:"meal"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PaymentType string  `json:"paymentType"`
}

// HotelResult is one hotel of a cached search result set.
type HotelResult struct {
	ID          string      `json:"id"`
	Rates       []HotelRate `json:"rates"`
	MinPrice    float64     `json:"minPrice"`
	Currency    string      `json:"currency"`
	HalalRating *RatingInfo `json:"halalRating,omitempty"`
}

// ActivitySearchRequest is the query for activity availability in a destination.
type ActivitySearchRequest struct {
	Destination  string `form:"destination" json:"destination" validate:"required"`
	From         string `form:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To           string `form:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Adults       int    `form:"adults" json:"adults" validate:"gte=1,lte=20"`
	ChildrenAges []int  `form:"children" json:"children" validate:"max=10,dive,gte=0,lte=17"`
	Language     string `form:"language" json:"language" validate:"omitempty,len=2"`
}

type ActivityRate struct {
	RateKey     string  `json:"rateKey"`
	RateClass   string  `json:"rateClass,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
}

type ActivityModality struct {
	Code  string         `json:"code"`
	Name  string         `json:"name"`
	Rates []ActivityRate `json:"rates"`
}

// ActivityResult is one activity of a cached search result set.
type ActivityResult struct {
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Type        string             `json:"type,omitempty"`
	Currency    string             `json:"currency"`
	FromAmount  float64            `json:"fromAmount"`
	Modalities  []ActivityModality `json:"modalities"`
	HalalRating *RatingInfo        `json:"halalRating,omitempty"`
}

// TransferSearchRequest is the query for a point-to-point transfer.
type TransferSearchRequest struct {
	FromType string `form:"fromType" json:"fromType" validate:"required,oneof=IATA ATLAS GPS"`
	FromCode string `form:"fromCode" json:"fromCode" validate:"required"`
	ToType   string `form:"toType" json:"toType" validate:"required,oneof=IATA ATLAS GPS"`
	ToCode   string `form:"toCode" json:"toCode" validate:"required"`
	Outbound string `form:"outbound" json:"outbound" validate:"required,datetime=2006-01-02T15:04:05"`
	Adults   int    `form:"adults" json:"adults" validate:"gte=1,lte=20"`
	Children int    `form:"children" json:"children" validate:"gte=0,lte=20"`
	Infants  int    `form:"infants" json:"infants" validate:"gte=0,lte=10"`
	Language string `form:"language" json:"language" validate:"omitempty,len=2"`
}

// TransferResult is one transfer service of a cached search result set.
type TransferResult struct {
	ID           int     `json:"id"`
	Direction    string  `json:"direction"`
	TransferType string  `json:"transferType"`
	Vehicle      string  `json:"vehicle"`
	Category     string  `json:"category"`
	RateKey      string  `json:"rateKey"`
	MinPax       int     `json:"minPax"`
	MaxPax       int     `json:"maxPax"`
	TotalAmount  float64 `json:"totalAmount"`
	Currency     string  `json:"currency"`
}

// SearchFilter re-slices a cached result set.
type SearchFilter struct {
	SearchID       string   `form:"searchId" json:"searchId" validate:"required"`
	Page           int      `form:"page" json:"page"`
	PageSize       int      `form:"pageSize" json:"pageSize"`
	MinPrice       *float64 `form:"minPrice" json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice       *float64 `form:"maxPrice" json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	Meal           string   `form:"meal" json:"meal,omitempty"`
	Vehicle        string   `form:"vehicle" json:"vehicle,omitempty"`
	MinHalalRating int      `form:"minHalalRating" json:"minHalalRating,omitempty" validate:"gte=0,lte=100"`
}

// PriceInRange reports whether amount satisfies the optional price bounds.
func (f SearchFilter) PriceInRange(amount float64) bool {
	if f.MinPrice != nil && amount < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && amount > *f.MaxPrice {
		return false
	}
	return true
}

// TransferCountry and TransferTerminal are supplier master data.
type TransferCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type TransferTerminal struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}
