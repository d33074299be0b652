package domain

import (
	"strings"
	"time"
)

// BookingStatus is the payment/booking state reported by the API.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusFailed    BookingStatus = "failed"
	BookingStatusUnknown   BookingStatus = "unknown"
)

// ParseBookingStatus normalizes an API status string. Unrecognised values map to unknown.
func ParseBookingStatus(s string) BookingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "":
		return BookingStatusPending
	case "confirmed", "paid", "success", "completed":
		return BookingStatusConfirmed
	case "failed", "cancelled", "canceled":
		return BookingStatusFailed
	default:
		return BookingStatusUnknown
	}
}

// HoldsSeat reports whether a booking in this status occupies its seat.
func (s BookingStatus) HoldsSeat() bool {
	return s != BookingStatusFailed
}

// Booking is a user's reservation of one seat on one route.
type Booking struct {
	ID         ID            `json:"id"`
	RouteID    ID            `json:"route"`
	SeatNumber int           `json:"seat_number"`
	Status     BookingStatus `json:"payment_status"`
	UserID     ID            `json:"user,omitempty"`
	CreatedAt  time.Time     `json:"created_at,omitzero"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	Route      ID  `json:"route"`
	SeatNumber int `json:"seat_number"`
}

// SignupRequest is the account creation payload. ConfirmPassword is checked locally
// and never sent upstream.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// TokenPair is the credential exchange result.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
