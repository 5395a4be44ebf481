package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// MaxCampgroundNameLength caps the campground name field.
const MaxCampgroundNameLength = 50

// Campground represents a bookable campground.
type Campground struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address" json:"address"`
	Telephone string             `bson:"telephone,omitempty" json:"tel,omitempty"`
}

// CampgroundSummary is the campground projection joined onto booking
// responses.
type CampgroundSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Tel     string `json:"tel,omitempty"`
}

// Summary converts a Campground to its booking-join projection.
func (c *Campground) Summary() CampgroundSummary {
	return CampgroundSummary{
		ID:      c.ID.Hex(),
		Name:    c.Name,
		Address: c.Address,
		Tel:     c.Telephone,
	}
}
