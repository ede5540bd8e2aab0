package request

import (
	"net/url"
	"testing"

	"flight-booking/internal/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlightContext(t *testing.T) {
	tests := []struct {
		name           string
		price          string
		passengers     string
		wantPrice      int64
		wantPassengers int
	}{
		{"regular", "250000", "2", 250000, 2},
		{"missing", "", "", 0, 1},
		{"price overflowing int64 math", "4e18", "3", 0, 3},
		{"price above max", "100000001", "1", 0, 1},
		{"too many passengers", "250000", "500", 250000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := NewFlightContext(url.Values{
				"flightId":    {"FL-1001"},
				"origin":      {"BOG"},
				"destination": {"MDE"},
				"price":       {tt.price},
				"passengers":  {tt.passengers},
			})
			assert.Equal(t, tt.wantPrice, fc.PricePerPassenger)
			assert.Equal(t, tt.wantPassengers, fc.Passengers)

			// whatever the query says, the session total stays positive
			s, err := checkout.NewSession("c-1", fc, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Snapshot().Price.GrandTotal, int64(checkout.ServiceFee))
		})
	}
}
