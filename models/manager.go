package models

import "time"

// Manager maps an external partner id to its contact details.
type Manager struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
