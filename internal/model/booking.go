package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxActiveBookings is the cap of simultaneous bookings per non-admin user,
// checked at creation time only.
const MaxActiveBookings = 3

// Booking links a user to a campground for a given date.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	CampgroundID primitive.ObjectID `bson:"campground" json:"campground"`
	BookingDate  time.Time          `bson:"bookingDate" json:"bookingDate"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// BookingDetail is a booking joined with its campground's summary fields,
// the shape every booking endpoint responds with.
type BookingDetail struct {
	ID          string            `json:"id"`
	BookingDate time.Time         `json:"bookingDate"`
	User        string            `json:"user"`
	Campground  CampgroundSummary `json:"campground"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Detail joins a booking with its campground.
func (b *Booking) Detail(campground *Campground) *BookingDetail {
	d := &BookingDetail{
		ID:          b.ID.Hex(),
		BookingDate: b.BookingDate,
		User:        b.UserID.Hex(),
		CreatedAt:   b.CreatedAt,
	}
	if campground != nil {
		d.Campground = campground.Summary()
	}
	return d
}

// CampgroundBookingCount is one dashboard group: bookings per campground.
type CampgroundBookingCount struct {
	CampgroundID   string `json:"campgroundId"`
	CampgroundName string `json:"campgroundName"`
	BookingCount   int64  `json:"bookingCount"`
}

// DashboardSummary aggregates all bookings for the admin dashboard.
type DashboardSummary struct {
	TotalBookings  int64                    `json:"totalBookings"`
	BookingSummary []CampgroundBookingCount `json:"bookingSummary"`
}
