package checkout

import "time"

type Step string

const (
	StepPassenger    Step = "passenger"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// next returns the step after s, or s itself when s is the last step.
func (s Step) next() Step {
	switch s {
	case StepPassenger:
		return StepPayment
	case StepPayment:
		return StepConfirmation
	default:
		return s
	}
}

func (s Step) previous() Step {
	switch s {
	case StepConfirmation:
		return StepPayment
	case StepPayment:
		return StepPassenger
	default:
		return s
	}
}

type PaymentMethod string

const (
	PaymentMethodCredit       PaymentMethod = "credit"
	PaymentMethodDebit        PaymentMethod = "debit"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

// IsCard reports whether the method collects card fields.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCredit || m == PaymentMethodDebit
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentNationalID DocumentType = "national-id"
	DocumentForeignID  DocumentType = "foreign-id"
	DocumentPassport   DocumentType = "passport"
)

type Service string

const (
	ServiceInsurance Service = "insurance"
	ServiceLuggage   Service = "luggage"
	ServiceSeat      Service = "seat"
)

type PassengerDetails struct {
	FirstName      string       `json:"firstName" validate:"notblank"`
	LastName       string       `json:"lastName" validate:"notblank"`
	Email          string       `json:"email" validate:"notblank,basic_email"`
	Phone          string       `json:"phone" validate:"notblank"`
	DocumentType   DocumentType `json:"documentType"`
	DocumentNumber string       `json:"documentNumber" validate:"notblank"`
	BirthDate      string       `json:"birthDate" validate:"required"`
}

// PaymentDetails carries the card sub-form. CardNumber and ExpiryDate hold
// display-formatted values.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber" validate:"notblank,card_number"`
	CardName   string `json:"cardName" validate:"notblank"`
	ExpiryDate string `json:"expiryDate" validate:"notblank,expiry"`
	CVV        string `json:"cvv" validate:"notblank,cvv"`
	SaveCard   bool   `json:"saveCard"`
}

type Services struct {
	Insurance bool `json:"insurance"`
	Luggage   bool `json:"luggage"`
	Seat      bool `json:"seat"`
}

// FlightContext is the read-only flight selection a checkout is opened for.
type FlightContext struct {
	FlightID          string `json:"flightId"`
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	DepartureDate     string `json:"departureDate,omitempty"`
	ReturnDate        string `json:"returnDate,omitempty"`
	TripType          string `json:"tripType,omitempty"`
	DepartureTime     string `json:"departureTime,omitempty"`
	ArrivalTime       string `json:"arrivalTime,omitempty"`
	Duration          string `json:"duration,omitempty"`
	FareType          string `json:"fareType,omitempty"`
	PricePerPassenger int64  `json:"price"`
	Passengers        int    `json:"passengers"`
	Direct            bool   `json:"direct"`
}

// State is a point-in-time copy of a checkout session.
type State struct {
	ID            string            `json:"id"`
	Flight        FlightContext     `json:"flight"`
	CurrentStep   Step              `json:"currentStep"`
	Passenger     PassengerDetails  `json:"passenger"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Payment       PaymentDetails    `json:"payment"`
	Services      Services          `json:"services"`
	FieldErrors   map[string]string `json:"fieldErrors"`
	Price         PriceBreakdown    `json:"price"`
	Submitting    bool              `json:"isSubmitting"`
	Complete      bool              `json:"isComplete"`
	Receipt       *PaymentReceipt   `json:"receipt,omitempty"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
