package entity

import "time"

// Location is a GeoJSON point. Coordinates are [longitude, latitude].
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formatted_address,omitempty" json:"formatted_address,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

type Bootcamp struct {
	ID            string    `bson:"_id" json:"id"`
	OwnerID       string    `bson:"owner_id" json:"owner_id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Website       string    `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	Address       string    `bson:"address" json:"address"`
	Location      Location  `bson:"location" json:"location"`
	Careers       []string  `bson:"careers,omitempty" json:"careers,omitempty"`
	Housing       bool      `bson:"housing" json:"housing"`
	JobAssistance bool      `bson:"job_assistance" json:"job_assistance"`
	Photo         string    `bson:"photo,omitempty" json:"photo,omitempty"`
	AverageCost   int       `bson:"average_cost,omitempty" json:"average_cost,omitempty"`
	AverageRating float64   `bson:"average_rating,omitempty" json:"average_rating,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
