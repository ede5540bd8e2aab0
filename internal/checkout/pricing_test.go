package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePrice_NoServices(t *testing.T) {
	b := CalculatePrice(200000, 2, Services{})

	assert.Equal(t, int64(400000), b.BaseTotal)
	assert.Equal(t, int64(76000), b.Taxes)
	assert.Equal(t, int64(35000), b.ServiceFee)
	assert.Equal(t, int64(0), b.ServicesTotal)
	assert.Equal(t, int64(511000), b.GrandTotal)
}

func TestCalculatePrice_AllServices(t *testing.T) {
	b := CalculatePrice(250000, 3, Services{Insurance: true, Luggage: true, Seat: true})

	assert.Equal(t, int64(750000), b.BaseTotal)
	assert.Equal(t, int64(142500), b.Taxes)
	assert.Equal(t, int64(135000), b.InsuranceTotal)
	assert.Equal(t, int64(180000), b.LuggageTotal)
	assert.Equal(t, int64(105000), b.SeatTotal)
	assert.Equal(t, int64(420000), b.ServicesTotal)
	assert.Equal(t, int64(750000+142500+35000+420000), b.GrandTotal)
}

func TestCalculatePrice_TaxRoundsHalfUp(t *testing.T) {
	tests := []struct {
		base int64
		want int64
	}{
		{base: 50, want: 10},  // 9.5
		{base: 49, want: 9},   // 9.31
		{base: 150, want: 29}, // 28.5
		{base: 1, want: 0},    // 0.19
		{base: 0, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculatePrice(tt.base, 1, Services{}).Taxes, "base %d", tt.base)
	}
}

func TestCalculatePrice_Additive(t *testing.T) {
	for _, pax := range []int{1, 2, 5} {
		for mask := 0; mask < 8; mask++ {
			svc := Services{Insurance: mask&1 != 0, Luggage: mask&2 != 0, Seat: mask&4 != 0}
			b := CalculatePrice(333333, pax, svc)
			assert.Equal(t, b.BaseTotal+b.Taxes+b.ServiceFee+b.ServicesTotal, b.GrandTotal)
			assert.Equal(t, b.InsuranceTotal+b.LuggageTotal+b.SeatTotal, b.ServicesTotal)
			assert.Equal(t, b, CalculatePrice(333333, pax, svc))
		}
	}
}

func TestUnitPrice(t *testing.T) {
	p, ok := UnitPrice(ServiceLuggage)
	assert.True(t, ok)
	assert.Equal(t, int64(60000), p)

	_, ok = UnitPrice(Service("lounge"))
	assert.False(t, ok)
}
