package models

import "time"

// OutboxEvent is written in the same transaction as a booking and relayed to
// the task queue once committed.
type OutboxEvent struct {
	ID             string     `bson:"id" json:"id"`
	Type           string     `bson:"type" json:"type"`
	Vertical       string     `bson:"vertical" json:"vertical"`
	PartnerOrderID string     `bson:"partnerOrderId" json:"partnerOrderId"`
	UserID         string     `bson:"userId" json:"userId"`
	Email          string     `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	DispatchedAt   *time.Time `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
	Attempts       int        `bson:"attempts" json:"attempts"`
}

const EventBookingConfirmed = "booking.confirmed"
