package checkout

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"
)

var (
	ErrMissingFlightContext = errors.New("missing flight context")
	ErrInvalidFlightContext = errors.New("flight price or passenger count out of range")
	ErrNotAtConfirmation    = errors.New("payment can only be submitted from the confirmation step")
	ErrSubmissionInProgress = errors.New("payment submission already in progress")
	ErrAlreadyComplete      = errors.New("checkout already complete")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrInvalidForm          = errors.New("checkout form has errors")
	ErrUnknownService       = errors.New("unknown service")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrSessionClosed        = errors.New("checkout session closed")
)

// PaymentErrorKey is the field key the submission banner is stored under.
const PaymentErrorKey = "payment"

const paymentFailedMessage = "There was an error processing the payment. Please try again."

const Currency = "COP"

type PaymentRequest struct {
	CheckoutID string
	FlightID   string
	Method     PaymentMethod
	Passenger  PassengerDetails
	Payment    PaymentDetails
	Amount     int64
	Currency   string
}

type PaymentReceipt struct {
	Reference string    `json:"reference"`
	Amount    int64     `json:"amount"`
	PaidAt    time.Time `json:"paidAt"`
}

// PaymentProcessor settles a checkout. Any returned error is treated as a
// recoverable decline.
type PaymentProcessor interface {
	Submit(ctx context.Context, req PaymentRequest) (PaymentReceipt, error)
}

// Transition reports the outcome of Advance or Retreat.
type Transition struct {
	From        Step              `json:"from"`
	To          Step              `json:"to"`
	Moved       bool              `json:"moved"`
	ScrollToTop bool              `json:"scrollToTop"`
	Errors      map[string]string `json:"errors,omitempty"`
}

type Option func(*Session)

// WithPassengerPrefill seeds the passenger form from a signed-in user.
func WithPassengerPrefill(fullName, email string) Option {
	return func(s *Session) {
		first, last, _ := strings.Cut(strings.TrimSpace(fullName), " ")
		s.passenger.FirstName = first
		s.passenger.LastName = strings.TrimSpace(last)
		s.passenger.Email = email
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is one checkout. All methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	flight    FlightContext
	processor PaymentProcessor
	now       func() time.Time

	step        Step
	passenger   PassengerDetails
	method      PaymentMethod
	payment     PaymentDetails
	services    Services
	fieldErrors map[string]string
	submitting  bool
	complete    bool
	closed      bool
	receipt     *PaymentReceipt
	updatedAt   time.Time
}

func NewSession(id string, flight FlightContext, processor PaymentProcessor, opts ...Option) (*Session, error) {
	if flight.FlightID == "" || flight.Origin == "" || flight.Destination == "" {
		return nil, ErrMissingFlightContext
	}
	if flight.Passengers < 1 {
		flight.Passengers = 1
	}
	if flight.PricePerPassenger < 0 {
		flight.PricePerPassenger = 0
	}
	if flight.Passengers > MaxPassengers || flight.PricePerPassenger > MaxPricePerPassenger {
		return nil, ErrInvalidFlightContext
	}

	s := &Session{
		id:          id,
		flight:      flight,
		processor:   processor,
		now:         time.Now,
		step:        StepPassenger,
		passenger:   PassengerDetails{DocumentType: DocumentNationalID},
		method:      PaymentMethodCredit,
		fieldErrors: map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.updatedAt = s.now()
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Advance validates the current step and moves forward when it is clean.
// From confirmation it does nothing.
func (s *Session) Advance() (Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return Transition{}, err
	}

	t := Transition{From: s.step, To: s.step}

	var errs map[string]string
	switch s.step {
	case StepPassenger:
		errs = ValidatePassenger(s.passenger)
	case StepPayment:
		errs = ValidatePayment(s.method, s.payment)
	default:
		return t, nil
	}

	s.touchLocked()
	if len(errs) > 0 {
		s.fieldErrors = errs
		t.Errors = maps.Clone(errs)
		return t, nil
	}

	s.fieldErrors = map[string]string{}
	s.step = s.step.next()
	t.To = s.step
	t.Moved = true
	t.ScrollToTop = true
	return t, nil
}

// Retreat moves back one step without validating or clearing anything.
func (s *Session) Retreat() (Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return Transition{}, err
	}

	t := Transition{From: s.step, To: s.step.previous()}
	if t.To == t.From {
		return t, nil
	}

	s.step = t.To
	s.touchLocked()
	t.Moved = true
	t.ScrollToTop = true
	return t, nil
}

func (s *Session) ToggleService(svc Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return err
	}

	switch svc {
	case ServiceInsurance:
		s.services.Insurance = !s.services.Insurance
	case ServiceLuggage:
		s.services.Luggage = !s.services.Luggage
	case ServiceSeat:
		s.services.Seat = !s.services.Seat
	default:
		return fmt.Errorf("%w: %q", ErrUnknownService, svc)
	}
	s.touchLocked()
	return nil
}

// PassengerPatch carries the passenger fields being edited. Nil fields are
// left as they are.
type PassengerPatch struct {
	FirstName      *string       `json:"firstName"`
	LastName       *string       `json:"lastName"`
	Email          *string       `json:"email"`
	Phone          *string       `json:"phone"`
	DocumentType   *DocumentType `json:"documentType"`
	DocumentNumber *string       `json:"documentNumber"`
	BirthDate      *string       `json:"birthDate"`
}

type PaymentPatch struct {
	CardNumber *string `json:"cardNumber"`
	CardName   *string `json:"cardName"`
	ExpiryDate *string `json:"expiryDate"`
	CVV        *string `json:"cvv"`
	SaveCard   *bool   `json:"saveCard"`
}

// UpdatePassenger writes the patched fields and clears their errors.
func (s *Session) UpdatePassenger(p PassengerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return err
	}

	setString(&s.passenger.FirstName, p.FirstName, s.clearErrorLocked("firstName"))
	setString(&s.passenger.LastName, p.LastName, s.clearErrorLocked("lastName"))
	setString(&s.passenger.Email, p.Email, s.clearErrorLocked("email"))
	setString(&s.passenger.Phone, p.Phone, s.clearErrorLocked("phone"))
	setString(&s.passenger.DocumentNumber, p.DocumentNumber, s.clearErrorLocked("documentNumber"))
	setString(&s.passenger.BirthDate, p.BirthDate, s.clearErrorLocked("birthDate"))
	if p.DocumentType != nil {
		s.passenger.DocumentType = *p.DocumentType
		delete(s.fieldErrors, "documentType")
	}
	s.touchLocked()
	return nil
}

// UpdatePayment writes the patched card fields, formatting the card number
// and expiry as they arrive, and clears their errors.
func (s *Session) UpdatePayment(p PaymentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return err
	}

	if p.CardNumber != nil {
		formatted := FormatCardNumber(*p.CardNumber)
		p.CardNumber = &formatted
	}
	if p.ExpiryDate != nil {
		formatted := FormatExpiryDate(*p.ExpiryDate)
		p.ExpiryDate = &formatted
	}

	setString(&s.payment.CardNumber, p.CardNumber, s.clearErrorLocked("cardNumber"))
	setString(&s.payment.CardName, p.CardName, s.clearErrorLocked("cardName"))
	setString(&s.payment.ExpiryDate, p.ExpiryDate, s.clearErrorLocked("expiryDate"))
	setString(&s.payment.CVV, p.CVV, s.clearErrorLocked("cvv"))
	if p.SaveCard != nil {
		s.payment.SaveCard = *p.SaveCard
	}
	s.touchLocked()
	return nil
}

func (s *Session) SelectPaymentMethod(m PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return err
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, m)
	}
	s.method = m
	s.touchLocked()
	return nil
}

// SubmitPayment charges the grand total through the processor. Only one
// submission runs at a time; the processor is called without holding the
// session lock so the session stays readable while it is pending.
func (s *Session) SubmitPayment(ctx context.Context) (PaymentReceipt, error) {
	s.mu.Lock()
	if err := s.checkWritableLocked(); err != nil {
		s.mu.Unlock()
		return PaymentReceipt{}, err
	}
	if s.submitting {
		s.mu.Unlock()
		return PaymentReceipt{}, ErrSubmissionInProgress
	}
	if s.step != StepConfirmation {
		s.mu.Unlock()
		return PaymentReceipt{}, ErrNotAtConfirmation
	}

	// fields may have been edited after the steps were passed
	errs := ValidatePassenger(s.passenger)
	maps.Copy(errs, ValidatePayment(s.method, s.payment))
	if len(errs) > 0 {
		s.fieldErrors = errs
		s.mu.Unlock()
		return PaymentReceipt{}, ErrInvalidForm
	}

	s.submitting = true
	delete(s.fieldErrors, PaymentErrorKey)
	req := PaymentRequest{
		CheckoutID: s.id,
		FlightID:   s.flight.FlightID,
		Method:     s.method,
		Passenger:  s.passenger,
		Payment:    s.payment,
		Amount:     s.priceLocked().GrandTotal,
		Currency:   Currency,
	}
	s.touchLocked()
	s.mu.Unlock()

	receipt, err := s.processor.Submit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		if err != nil {
			return PaymentReceipt{}, ErrSessionClosed
		}
		// the charge went through; hand the receipt back so it is not lost
		return receipt, ErrSessionClosed
	}
	s.submitting = false
	s.touchLocked()

	if err != nil {
		s.fieldErrors[PaymentErrorKey] = paymentFailedMessage
		return PaymentReceipt{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	s.complete = true
	s.fieldErrors = map[string]string{}
	s.receipt = &receipt
	return receipt, nil
}

// Close tears the session down. A submission still in flight will not
// write its outcome; SubmitPayment then returns ErrSessionClosed together
// with the receipt when the charge succeeded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// IdleSince reports the time of the last state change.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:            s.id,
		Flight:        s.flight,
		CurrentStep:   s.step,
		Passenger:     s.passenger,
		PaymentMethod: s.method,
		Payment:       s.payment,
		Services:      s.services,
		FieldErrors:   maps.Clone(s.fieldErrors),
		Price:         s.priceLocked(),
		Submitting:    s.submitting,
		Complete:      s.complete,
		UpdatedAt:     s.updatedAt,
	}
	if s.receipt != nil {
		r := *s.receipt
		st.Receipt = &r
	}
	return st
}

func (s *Session) priceLocked() PriceBreakdown {
	return CalculatePrice(s.flight.PricePerPassenger, s.flight.Passengers, s.services)
}

// checkMutableLocked also refuses edits while a charge is pending, so the
// amount sent to the processor stays the session total.
func (s *Session) checkMutableLocked() error {
	if err := s.checkWritableLocked(); err != nil {
		return err
	}
	if s.submitting {
		return ErrSubmissionInProgress
	}
	return nil
}

func (s *Session) checkWritableLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.complete {
		return ErrAlreadyComplete
	}
	return nil
}

func (s *Session) clearErrorLocked(field string) func() {
	return func() {
		delete(s.fieldErrors, field)
	}
}

func (s *Session) touchLocked() {
	s.updatedAt = s.now()
}

func setString(dst *string, v *string, onSet func()) {
	if v == nil {
		return
	}
	*dst = *v
	onSet()
}
