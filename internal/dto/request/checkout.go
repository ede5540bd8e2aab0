package request

import (
	"net/url"
	"strings"

	"flight-booking/internal/checkout"
	"flight-booking/pkg/utils"
)

// NewFlightContext builds the read-only flight selection from the query
// string the results page links to checkout with.
func NewFlightContext(q url.Values) checkout.FlightContext {
	return checkout.FlightContext{
		FlightID:          strings.TrimSpace(q.Get("flightId")),
		Origin:            strings.TrimSpace(q.Get("origin")),
		Destination:       strings.TrimSpace(q.Get("destination")),
		DepartureDate:     q.Get("departureDate"),
		ReturnDate:        q.Get("returnDate"),
		TripType:          q.Get("tripType"),
		DepartureTime:     q.Get("departureTime"),
		ArrivalTime:       q.Get("arrivalTime"),
		Duration:          q.Get("duration"),
		FareType:          q.Get("fareType"),
		PricePerPassenger: utils.ParseInt64(q.Get("price"), 0, checkout.MaxPricePerPassenger),
		Passengers:        utils.ParseIntMax(q.Get("passengers"), 1, checkout.MaxPassengers),
		Direct:            utils.ParseBool(q.Get("direct")),
	}
}

type UpdatePassengerRequest struct {
	checkout.PassengerPatch
}

type UpdatePaymentRequest struct {
	PaymentMethod *checkout.PaymentMethod `json:"paymentMethod"`
	checkout.PaymentPatch
}

type FormatRequest struct {
	CardNumber *string `json:"cardNumber"`
	ExpiryDate *string `json:"expiryDate"`
}
