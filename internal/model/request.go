package model

import "time"

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// LoginResult pairs the local user view with the provider session token.
type LoginResult struct {
	UserView
	Token string `json:"token"`
}

// CreateCampgroundRequest is the body of POST /campgrounds.
type CreateCampgroundRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Address   string `json:"address" binding:"required"`
	Telephone string `json:"tel"`
}

// UpdateCampgroundRequest is the body of PUT /campgrounds/:id. Absent fields
// are left untouched.
type UpdateCampgroundRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Address   *string `json:"address,omitempty"`
	Telephone *string `json:"tel,omitempty"`
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	CampgroundID string    `json:"campgroundId" binding:"required"`
	BookingDate  time.Time `json:"bookingDate" binding:"required"`
}

// UpdateBookingRequest is the body of PUT /bookings/:id.
type UpdateBookingRequest struct {
	CampgroundID *string    `json:"campgroundId,omitempty"`
	BookingDate  *time.Time `json:"bookingDate,omitempty"`
}
