package checkout

// Upper bounds on a booking's inputs. They keep every price total far from
// int64 overflow.
const (
	MaxPassengers        = 9
	MaxPricePerPassenger = 100_000_000
)

// Amounts are integer currency units.
const (
	TaxRatePercent = 19
	ServiceFee     = 35000
	InsurancePrice = 45000
	LuggagePrice   = 60000
	SeatPrice      = 35000
)

type PriceBreakdown struct {
	BaseTotal      int64 `json:"baseTotal"`
	Taxes          int64 `json:"taxes"`
	ServiceFee     int64 `json:"serviceFee"`
	InsuranceTotal int64 `json:"insuranceTotal"`
	LuggageTotal   int64 `json:"luggageTotal"`
	SeatTotal      int64 `json:"seatTotal"`
	ServicesTotal  int64 `json:"servicesTotal"`
	GrandTotal     int64 `json:"grandTotal"`
}

// CalculatePrice prices a booking. Only the tax term is rounded (half up);
// every other term is exact.
func CalculatePrice(basePerPassenger int64, passengers int, services Services) PriceBreakdown {
	pax := int64(passengers)

	b := PriceBreakdown{
		BaseTotal:  basePerPassenger * pax,
		ServiceFee: ServiceFee,
	}
	b.Taxes = roundPercent(b.BaseTotal, TaxRatePercent)

	b.InsuranceTotal = serviceTotal(ServiceInsurance, services.Insurance, pax)
	b.LuggageTotal = serviceTotal(ServiceLuggage, services.Luggage, pax)
	b.SeatTotal = serviceTotal(ServiceSeat, services.Seat, pax)
	b.ServicesTotal = b.InsuranceTotal + b.LuggageTotal + b.SeatTotal
	b.GrandTotal = b.BaseTotal + b.Taxes + b.ServiceFee + b.ServicesTotal

	return b
}

// UnitPrice returns the per-passenger price of an ancillary service.
func UnitPrice(s Service) (int64, bool) {
	switch s {
	case ServiceInsurance:
		return InsurancePrice, true
	case ServiceLuggage:
		return LuggagePrice, true
	case ServiceSeat:
		return SeatPrice, true
	}
	return 0, false
}

func serviceTotal(s Service, selected bool, pax int64) int64 {
	if !selected {
		return 0
	}
	price, _ := UnitPrice(s)
	return price * pax
}

func roundPercent(amount, percent int64) int64 {
	scaled := amount * percent
	if scaled >= 0 {
		return (scaled + 50) / 100
	}
	return -((-scaled + 50) / 100)
}
