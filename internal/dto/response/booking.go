package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	CheckoutID     string    `json:"checkout_id"`
	FlightID       string    `json:"flight_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureDate  string    `json:"departure_date,omitempty"`
	DepartureTime  string    `json:"departure_time,omitempty"`
	Passengers     int       `json:"passengers"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	PaymentMethod  string    `json:"payment_method"`
	TotalAmount    int64     `json:"total_amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID.String(),
		Reference:      b.Reference,
		CheckoutID:     b.CheckoutID,
		FlightID:       b.FlightID,
		Origin:         b.Origin,
		Destination:    b.Destination,
		DepartureDate:  b.DepartureDate,
		DepartureTime:  b.DepartureTime,
		Passengers:     b.Passengers,
		PassengerName:  b.PassengerName,
		PassengerEmail: b.PassengerEmail,
		PaymentMethod:  b.PaymentMethod,
		TotalAmount:    b.TotalAmount,
		Currency:       b.Currency,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}
