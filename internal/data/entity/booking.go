package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a paid checkout. UserID is nil for guest purchases.
type Booking struct {
	Base
	Reference      string        `db:"reference"`
	CheckoutID     string        `db:"checkout_id"`
	UserID         *uuid.UUID    `db:"user_id"`
	FlightID       string        `db:"flight_id"`
	Origin         string        `db:"origin"`
	Destination    string        `db:"destination"`
	DepartureDate  string        `db:"departure_date"`
	DepartureTime  string        `db:"departure_time"`
	Passengers     int           `db:"passengers"`
	PassengerName  string        `db:"passenger_name"`
	PassengerEmail string        `db:"passenger_email"`
	PaymentMethod  string        `db:"payment_method"`
	TotalAmount    int64         `db:"total_amount"`
	Currency       string        `db:"currency"`
	Status         BookingStatus `db:"status"`
}
