package response

import "flight-booking/internal/flights"

type FlightListResponse struct {
	Search  flights.SearchContext `json:"search"`
	Key     string                `json:"key"`
	Flights []flights.FlightQuote `json:"flights"`
	Cached  bool                  `json:"cached"`
}

type SearchStatusResponse struct {
	Key     string                `json:"key"`
	Search  flights.SearchContext `json:"search"`
	Loading bool                  `json:"loading"`
	Flights []flights.FlightQuote `json:"flights"`
	Error   string                `json:"error,omitempty"`
}
