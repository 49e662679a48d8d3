package models

import "time"

// Rating is a single named, weighted halal-compliance criterion.
type Rating struct {
	Name   string `bson:"name" json:"name" validate:"required"`
	Weight int    `bson:"weight" json:"weight" validate:"gte=0,lte=100"`
}

// RatingInfo is the halal rating of one hotel or activity.
type RatingInfo struct {
	ID         string    `bson:"id" json:"id"`
	Ratings    []Rating  `bson:"ratings" json:"ratings"`
	StarRating int       `bson:"star_rating" json:"star_rating"`
	UpdatedBy  string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RatingStructure is the canonical set of rating categories for a vertical.
type RatingStructure struct {
	Vertical    string    `bson:"vertical" json:"vertical"`
	Categories  []Rating  `bson:"categories" json:"categories"`
	TotalWeight int       `bson:"totalWeight" json:"totalWeight"`
	UpdatedBy   string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
