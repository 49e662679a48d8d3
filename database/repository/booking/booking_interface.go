package bookingRepo

import (
	"context"

	"travelhub/models"
)

// BookingRepository persists the bookings of one vertical.
type BookingRepository interface {
	// Create inserts a new booking. Bookings are append-only.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByPartnerOrderID retrieves a booking by its partner order id.
	GetByPartnerOrderID(ctx context.Context, partnerOrderID string) (*models.Booking, error)
	// ListByUser returns a user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	EnsureIndexes(ctx context.Context) error
}
