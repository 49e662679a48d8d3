package models

import "time"

// InventoryMeta is shared by every admin-managed inventory document.
type InventoryMeta struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (m *InventoryMeta) Meta() *InventoryMeta { return m }

type Money struct {
	Amount   float64 `bson:"amount" json:"amount" validate:"gte=0"`
	Currency string  `bson:"currency" json:"currency" validate:"required,len=3"`
}

type ItineraryDay struct {
	Day         int    `bson:"day" json:"day" validate:"gte=1"`
	Title       string `bson:"title" json:"title" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// HolidayPackage is a bookable multi-day holiday.
type HolidayPackage struct {
	InventoryMeta `bson:",inline"`
	Name          string         `bson:"name" json:"name" validate:"required"`
	Destination   string         `bson:"destination" json:"destination" validate:"required"`
	Description   string         `bson:"description,omitempty" json:"description,omitempty"`
	DurationDays  int            `bson:"durationDays" json:"durationDays" validate:"gte=1"`
	Price         Money          `bson:"price" json:"price"`
	Images        []string       `bson:"images,omitempty" json:"images,omitempty"`
	Itinerary     []ItineraryDay `bson:"itinerary,omitempty" json:"itinerary,omitempty" validate:"dive"`
	Inclusions    []string       `bson:"inclusions,omitempty" json:"inclusions,omitempty"`
	Exclusions    []string       `bson:"exclusions,omitempty" json:"exclusions,omitempty"`
}

type Cabin struct {
	Type     string `bson:"type" json:"type" validate:"required"`
	Price    Money  `bson:"price" json:"price"`
	Capacity int    `bson:"capacity" json:"capacity" validate:"gte=1"`
}

// CruisePackage is a bookable cruise sailing.
type CruisePackage struct {
	InventoryMeta `bson:",inline"`
	Name          string         `bson:"name" json:"name" validate:"required"`
	Ship          string         `bson:"ship" json:"ship" validate:"required"`
	Destination   string         `bson:"destination" json:"destination" validate:"required"`
	DepartureDate string         `bson:"departureDate" json:"departureDate" validate:"required,datetime=2006-01-02"`
	Nights        int            `bson:"nights" json:"nights" validate:"gte=1"`
	Ports         []string       `bson:"ports,omitempty" json:"ports,omitempty"`
	Price         Money          `bson:"price" json:"price"`
	Cabins        []Cabin        `bson:"cabins,omitempty" json:"cabins,omitempty" validate:"dive"`
	Images        []string       `bson:"images,omitempty" json:"images,omitempty"`
	Itinerary     []ItineraryDay `bson:"itinerary,omitempty" json:"itinerary,omitempty" validate:"dive"`
}

// HasCabin reports whether the sailing offers the given cabin type.
func (p *CruisePackage) HasCabin(cabinType string) bool {
	for _, c := range p.Cabins {
		if c.Type == cabinType {
			return true
		}
	}
	return false
}
