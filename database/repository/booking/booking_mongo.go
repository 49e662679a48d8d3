package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"travelhub/database"
	"travelhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a repository over the given bookings collection,
// e.g. "hotel_bookings".
func NewMongoBookingRepo(db *mongo.Database, collection string) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection(collection)}
}

// Create inserts a new booking document. When ctx carries a session the
// insert joins its transaction.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking %s: %w", booking.PartnerOrderID, database.Translate(err))
	}
	return nil
}

// GetByPartnerOrderID retrieves a booking by its partner order id.
func (r *MongoBookingRepo) GetByPartnerOrderID(ctx context.Context, partnerOrderID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"partnerOrderId": partnerOrderID}).Decode(&booking)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", partnerOrderID, database.Translate(err))
	}
	return &booking, nil
}

// ListByUser returns all bookings of a user, newest first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "partnerOrderId", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
