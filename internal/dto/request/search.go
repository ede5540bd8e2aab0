package request

import (
	"net/url"
	"strings"

	"flight-booking/internal/checkout"
	"flight-booking/internal/flights"
	"flight-booking/pkg/utils"
)

// FlightSearchRequest is the results page query string.
type FlightSearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Passengers    int    `json:"passengers"`
	TripType      string `json:"tripType"`
}

// NewFlightSearchRequest never fails: malformed numbers fall back to their
// defaults.
func NewFlightSearchRequest(q url.Values) FlightSearchRequest {
	tripType := strings.TrimSpace(q.Get("tripType"))
	if tripType == "" {
		tripType = "roundTrip"
	}
	return FlightSearchRequest{
		Origin:        strings.TrimSpace(q.Get("origin")),
		Destination:   strings.TrimSpace(q.Get("destination")),
		DepartureDate: q.Get("departureDate"),
		ReturnDate:    q.Get("returnDate"),
		Passengers:    utils.ParseIntMax(q.Get("passengers"), 1, checkout.MaxPassengers),
		TripType:      tripType,
	}
}

func (r FlightSearchRequest) SearchContext() flights.SearchContext {
	passengers := r.Passengers
	if passengers < 1 {
		passengers = 1
	}
	return flights.SearchContext{
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureDate: r.DepartureDate,
		ReturnDate:    r.ReturnDate,
		Passengers:    passengers,
		TripType:      r.TripType,
	}
}
