package flights

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	DefaultOrigin      = "BOG"
	DefaultDestination = "MDE"
)

// SearchContext is what the search form hands to the results page.
type SearchContext struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers"`
	TripType      string `json:"tripType,omitempty"`
}

func (sc SearchContext) Complete() bool {
	return strings.TrimSpace(sc.Origin) != "" && strings.TrimSpace(sc.Destination) != ""
}

func (sc SearchContext) Key() string {
	return SearchKey(sc.Origin, sc.Destination, sc.DepartureDate, sc.Passengers)
}

// SearchKey identifies a search. Identical searches share a key and
// therefore a seed.
func SearchKey(origin, destination, date string, passengers int) string {
	return fmt.Sprintf("%s-%s-%s-%d", origin, destination, date, passengers)
}

// Seed hashes a search key with the 32-bit rolling hash h = h*15 + c and
// returns its absolute value.
func Seed(key string) int64 {
	var h int32
	for _, c := range utf16Units(key) {
		h = (h << 4) - h + int32(c)
	}
	return int64(math.Abs(float64(h)))
}

// utf16Units mirrors how browsers index strings so seeds match the ones
// computed client side.
func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xd800+(r>>10)), uint16(0xdc00+(r&0x3ff)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

var (
	parenCode = regexp.MustCompile(`\(([^)]+)\)`)
	bareCode  = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// AirportCode pulls the IATA code out of a label like "Bogotá (BOG)". A bare
// three-letter code is accepted as is; anything else yields fallback.
func AirportCode(label, fallback string) string {
	if m := parenCode.FindStringSubmatch(label); m != nil {
		if code := strings.TrimSpace(m[1]); code != "" {
			return strings.ToUpper(code)
		}
	}
	if trimmed := strings.TrimSpace(label); bareCode.MatchString(trimmed) {
		return strings.ToUpper(trimmed)
	}
	return fallback
}
