package models

import "time"

// Verticals handled by the booking pipeline.
const (
	VerticalHotel     = "hotel"
	VerticalCruise    = "cruise"
	VerticalHoliday   = "holiday"
	VerticalInsurance = "insurance"
	VerticalActivity  = "activity"
	VerticalTransfer  = "transfer"
)

const BookingStatusConfirmed = "confirmed"

// Booking is a confirmed reservation. It is written once and never updated.
type Booking struct {
	ID             string                 `bson:"id" json:"id"`
	PartnerOrderID string                 `bson:"partnerOrderId" json:"partnerOrderId"`
	Vertical       string                 `bson:"vertical" json:"vertical"`
	ReferenceID    string                 `bson:"referenceId" json:"referenceId"` // package, plan, book hash or rate key
	UserID         string                 `bson:"userId" json:"userId"`
	Contact        Contact                `bson:"contact" json:"contact"`
	Guests         []Guest                `bson:"guests,omitempty" json:"guests,omitempty"`
	Adults         int                    `bson:"adults" json:"adults"`
	Children       int                    `bson:"children" json:"children"`
	Payment        map[string]interface{} `bson:"payment,omitempty" json:"payment,omitempty"`
	Price          map[string]interface{} `bson:"price,omitempty" json:"price,omitempty"`
	Details        map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
	Supplier       *SupplierConfirmation  `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Status         string                 `bson:"status" json:"status"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
}

// Contact is the lead contact / policy holder of a booking.
type Contact struct {
	FirstName string `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string `bson:"lastName" json:"lastName" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Phone     string `bson:"phone" json:"phone" validate:"required"`
	Comment   string `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Guest is a traveller named on a booking.
type Guest struct {
	FirstName string `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string `bson:"lastName" json:"lastName" validate:"required"`
	Type      string `bson:"type" json:"type" validate:"required,oneof=ADULT CHILD"`
	Age       int    `bson:"age,omitempty" json:"age,omitempty" validate:"gte=0,lte=120"`
	Room      int    `bson:"room,omitempty" json:"room,omitempty" validate:"gte=0"`
}

// SupplierConfirmation records what the external supplier returned on finish.
type SupplierConfirmation struct {
	Supplier  string `bson:"supplier" json:"supplier"`
	OrderID   string `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Reference string `bson:"reference,omitempty" json:"reference,omitempty"`
	Status    string `bson:"status" json:"status"`
}

// CountGuests returns the number of ADULT and CHILD guests.
func CountGuests(guests []Guest) (adults, children int) {
	for _, g := range guests {
		if g.Type == "CHILD" {
			children++
		} else {
			adults++
		}
	}
	return adults, children
}
