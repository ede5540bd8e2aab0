package flights

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

const (
	firstDepartureHour = 5
	departureHourSpan  = 17
	minDurationMinutes = 45
	durationSpan       = 135
	minBasePrice       = 200000
	basePriceSpan      = 600000
	directProbability  = 0.8
	groupDiscount      = 0.05
	firstFlightNumber  = 1000
)

type FlightQuote struct {
	ID              string `json:"id"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	Duration        string `json:"duration"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           int64  `json:"price"`
	Direct          bool   `json:"direct"`
}

type GenerateRequest struct {
	Origin      string
	Destination string
	Date        string
	Passengers  int
	Count       int
}

// GenerateFunc produces count quotes for a request. Generate is the default.
type GenerateFunc func(req GenerateRequest, seed int64) []FlightQuote

// Generate builds req.Count synthetic quotes sorted by departure time. The
// same request and seed always produce the same listing.
func Generate(req GenerateRequest, seed int64) []FlightQuote {
	if req.Count <= 0 {
		return []FlightQuote{}
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	origin := AirportCode(req.Origin, DefaultOrigin)
	destination := AirportCode(req.Destination, DefaultDestination)

	quotes := make([]FlightQuote, req.Count)
	for i := range quotes {
		depHour := int(rng.Float64()*departureHourSpan) + firstDepartureHour
		depMinute := int(rng.Float64()*12) * 5
		duration := int(rng.Float64()*durationSpan) + minDurationMinutes
		base := float64(int(rng.Float64()*basePriceSpan) + minBasePrice)
		direct := rng.Float64() < directProbability

		arrival := (depHour*60 + depMinute + duration) % (24 * 60)

		quotes[i] = FlightQuote{
			ID:              fmt.Sprintf("FL-%d", firstFlightNumber+i),
			Origin:          origin,
			Destination:     destination,
			DepartureTime:   clock(depHour, depMinute),
			ArrivalTime:     clock(arrival/60, arrival%60),
			Duration:        FormatDuration(duration),
			DurationMinutes: duration,
			Price:           quotePrice(base, duration, req.Passengers),
			Direct:          direct,
		}
	}

	slices.SortStableFunc(quotes, func(a, b FlightQuote) int {
		return cmp.Compare(hhmm(a.DepartureTime), hhmm(b.DepartureTime))
	})
	return quotes
}

// quotePrice applies the duration surcharge and the group discount, rounding
// half away from zero.
func quotePrice(base float64, durationMinutes, passengers int) int64 {
	factor := 1 + (float64(durationMinutes)/180)*0.5
	discount := 0.0
	if passengers > 1 {
		discount = groupDiscount
	}
	return int64(math.Floor(base*factor*(1-discount) + 0.5))
}

// FormatDuration renders minutes as "1h 5m", or "2h" on the hour.
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func hhmm(t string) int {
	var h, m int
	if _, err := fmt.Sscanf(t, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*100 + m
}
