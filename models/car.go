package models

import "time"

// Car is one vehicle in the rental fleet.
type Car struct {
	CarID        string    `json:"id" bson:"carid"`
	Name         string    `json:"name" bson:"name"`
	Type         string    `json:"type" bson:"type"`
	Year         string    `json:"year" bson:"year"`
	Price        float64   `json:"price" bson:"price"` // daily rate
	Seats        int       `json:"seats" bson:"seats"`
	Fuel         string    `json:"fuel" bson:"fuel"`
	Transmission string    `json:"transmission" bson:"transmission"`
	Location     string    `json:"location" bson:"location"`
	Image        string    `json:"image" bson:"image"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Features     []string  `json:"features,omitempty" bson:"features,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
