package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

// Active bookings block deletion of the screening they reference.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	Base
	UserID      uuid.UUID     `db:"user_id"`
	ScreeningID uuid.UUID     `db:"screening_id"`
	TotalSeats  int           `db:"total_seats"`
	TotalPrice  float64       `db:"total_price"`
	Status      BookingStatus `db:"status"`
}
