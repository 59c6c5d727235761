package entity

import "time"

type Review struct {
	ID         string    `bson:"_id" json:"id"`
	BootcampID string    `bson:"bootcamp_id" json:"bootcamp_id"`
	OwnerID    string    `bson:"owner_id" json:"owner_id"`
	Title      string    `bson:"title" json:"title"`
	Text       string    `bson:"text" json:"text"`
	Rating     int       `bson:"rating" json:"rating"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
