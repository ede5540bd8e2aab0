package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"flight-booking/internal/checkout"
	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCheckoutNotFound = errors.New("checkout not found")

const (
	EventCheckoutCompleted = "checkout_completed"
	EventPaymentFailed     = "payment_failed"
)

const eventTimeout = 5 * time.Second

// CheckoutEvent is published once per payment outcome.
type CheckoutEvent struct {
	Type          string    `json:"type"`
	CheckoutID    string    `json:"checkoutId"`
	FlightID      string    `json:"flightId"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Passengers    int       `json:"passengers"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	Reference     string    `json:"reference,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type CheckoutService interface {
	Open(ctx context.Context, flight checkout.FlightContext, userID *uuid.UUID) (*response.CheckoutResponse, error)
	Get(id string) (*response.CheckoutResponse, error)
	UpdatePassenger(id string, req request.UpdatePassengerRequest) (*response.CheckoutResponse, error)
	UpdatePayment(id string, req request.UpdatePaymentRequest) (*response.CheckoutResponse, error)
	ToggleService(id string, svc checkout.Service) (*response.CheckoutResponse, error)
	Advance(id string) (*response.TransitionResponse, error)
	Retreat(id string) (*response.TransitionResponse, error)
	// Submit returns the snapshot alongside the error when the payment was
	// declined or the forms no longer validate.
	Submit(ctx context.Context, id string) (*response.CheckoutResponse, error)
	Discard(id string) error
	Sweep(now time.Time) int
	Run(ctx context.Context)
	Close()
}

type checkoutService struct {
	repo     *repository.Repository
	payments checkout.PaymentProcessor
	events   EventPublisher
	config   utils.CheckoutConfig
	log      *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*checkout.Session
	owners   map[string]uuid.UUID
	wg       sync.WaitGroup
}

// NewCheckoutService builds the checkout registry. events may be nil.
func NewCheckoutService(
	repo *repository.Repository,
	payments checkout.PaymentProcessor,
	events EventPublisher,
	config utils.CheckoutConfig,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:     repo,
		payments: payments,
		events:   events,
		config:   config,
		log:      log.With(zap.String("service", "checkout")),
		now:      time.Now,
		sessions: map[string]*checkout.Session{},
		owners:   map[string]uuid.UUID{},
	}
}

// Open starts a checkout for the selected flight. When userID is set the
// passenger form is prefilled from that account.
func (s *checkoutService) Open(ctx context.Context, flight checkout.FlightContext, userID *uuid.UUID) (*response.CheckoutResponse, error) {
	opts := []checkout.Option{checkout.WithClock(s.now)}

	if userID != nil {
		user, err := s.repo.User.FindByID(ctx, *userID)
		if err != nil {
			s.log.Warn("Failed to load user for prefill", zap.Error(err), zap.String("user_id", userID.String()))
		} else if user != nil {
			opts = append(opts, checkout.WithPassengerPrefill(user.Name, user.Email))
		}
	}

	id := uuid.NewString()
	session, err := checkout.NewSession(id, flight, s.payments, opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = session
	if userID != nil {
		s.owners[id] = *userID
	}
	s.mu.Unlock()

	s.log.Info("Checkout opened",
		zap.String("checkout_id", id),
		zap.String("flight_id", flight.FlightID),
		zap.Int("passengers", flight.Passengers))

	return s.snapshot(session), nil
}

func (s *checkoutService) Get(id string) (*response.CheckoutResponse, error) {
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

func (s *checkoutService) UpdatePassenger(id string, req request.UpdatePassengerRequest) (*response.CheckoutResponse, error) {
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := session.UpdatePassenger(req.PassengerPatch); err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

func (s *checkoutService) UpdatePayment(id string, req request.UpdatePaymentRequest) (*response.CheckoutResponse, error) {
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod != nil {
		if err := session.SelectPaymentMethod(*req.PaymentMethod); err != nil {
			return nil, err
		}
	}
	if err := session.UpdatePayment(req.PaymentPatch); err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

func (s *checkoutService) ToggleService(id string, svc checkout.Service) (*response.CheckoutResponse, error) {
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := session.ToggleService(svc); err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

func (s *checkoutService) Advance(id string) (*response.TransitionResponse, error) {
	return s.move(id, (*checkout.Session).Advance)
}

func (s *checkoutService) Retreat(id string) (*response.TransitionResponse, error) {
	return s.move(id, (*checkout.Session).Retreat)
}

func (s *checkoutService) move(id string, step func(*checkout.Session) (checkout.Transition, error)) (*response.TransitionResponse, error) {
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	t, err := step(session)
	if err != nil {
		return nil, err
	}
	return &response.TransitionResponse{
		Transition: t,
		Checkout:   response.CheckoutToResponse(session.Snapshot()),
	}, nil
}

func (s *checkoutService) Submit(ctx context.Context, id string) (*response.CheckoutResponse, error) {
	// 1. Find session
	session, err := s.find(id)
	if err != nil {
		return nil, err
	}
	owner := s.owner(id)

	// 2. Charge
	receipt, err := session.SubmitPayment(ctx)
	state := session.Snapshot()

	// a settled charge is persisted even if the client has gone away
	persistCtx := context.WithoutCancel(ctx)

	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrPaymentFailed):
			s.log.Warn("Payment declined", zap.String("checkout_id", id), zap.Error(err))
			s.publish(s.event(EventPaymentFailed, state, "", err))
			return s.snapshot(session), err
		case errors.Is(err, checkout.ErrInvalidForm):
			return s.snapshot(session), err
		case errors.Is(err, checkout.ErrSessionClosed) && receipt.Reference != "":
			s.log.Error("Payment settled for a discarded checkout",
				zap.String("checkout_id", id),
				zap.String("reference", receipt.Reference),
				zap.Int64("amount", receipt.Amount))
			if err := s.recordBooking(persistCtx, state, receipt, owner); err != nil {
				s.log.Error("Failed to record booking", zap.Error(err), zap.String("checkout_id", id))
			}
		}
		return nil, err
	}

	s.log.Info("Checkout completed",
		zap.String("checkout_id", id),
		zap.String("reference", receipt.Reference),
		zap.Int64("amount", receipt.Amount))

	// 3. Persist; failures here do not undo the payment
	if err := s.recordBooking(persistCtx, state, receipt, owner); err != nil {
		s.log.Error("Failed to record booking", zap.Error(err), zap.String("checkout_id", id))
	}
	if state.PaymentMethod.IsCard() {
		if err := s.recordCard(persistCtx, state); err != nil {
			s.log.Error("Failed to record card validation", zap.Error(err), zap.String("checkout_id", id))
		}
	}

	// 4. Notify
	s.publish(s.event(EventCheckoutCompleted, state, receipt.Reference, nil))

	return s.snapshot(session), nil
}

func (s *checkoutService) Discard(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	delete(s.owners, id)
	s.mu.Unlock()

	if !ok {
		return ErrCheckoutNotFound
	}
	session.Close()
	s.log.Info("Checkout discarded", zap.String("checkout_id", id))
	return nil
}

// Sweep closes and forgets every checkout idle for longer than the TTL.
func (s *checkoutService) Sweep(now time.Time) int {
	ttl := s.config.SessionTTL
	if ttl <= 0 {
		return 0
	}

	var expired []*checkout.Session
	s.mu.Lock()
	for id, session := range s.sessions {
		if now.Sub(session.IdleSince()) > ttl {
			expired = append(expired, session)
			delete(s.sessions, id)
			delete(s.owners, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	if len(expired) > 0 {
		s.log.Info("Expired checkouts swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is done.
func (s *checkoutService) Run(ctx context.Context) {
	interval := s.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Close closes every open checkout and waits for in-flight events.
func (s *checkoutService) Close() {
	s.mu.Lock()
	for id, session := range s.sessions {
		session.Close()
		delete(s.sessions, id)
		delete(s.owners, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// ==================== HELPER METHODS ====================

func (s *checkoutService) find(id string) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrCheckoutNotFound
	}
	return session, nil
}

func (s *checkoutService) snapshot(session *checkout.Session) *response.CheckoutResponse {
	resp := response.CheckoutToResponse(session.Snapshot())
	return &resp
}

func (s *checkoutService) owner(id string) *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.owners[id]
	if !ok {
		return nil
	}
	return &userID
}

// recordBooking stores what was actually charged, which is the receipt amount.
func (s *checkoutService) recordBooking(ctx context.Context, state checkout.State, receipt checkout.PaymentReceipt, owner *uuid.UUID) error {
	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:      receipt.Reference,
		CheckoutID:     state.ID,
		UserID:         owner,
		FlightID:       state.Flight.FlightID,
		Origin:         state.Flight.Origin,
		Destination:    state.Flight.Destination,
		DepartureDate:  state.Flight.DepartureDate,
		DepartureTime:  state.Flight.DepartureTime,
		Passengers:     state.Flight.Passengers,
		PassengerName:  strings.TrimSpace(state.Passenger.FirstName + " " + state.Passenger.LastName),
		PassengerEmail: state.Passenger.Email,
		PaymentMethod:  string(state.PaymentMethod),
		TotalAmount:    receipt.Amount,
		Currency:       checkout.Currency,
		Status:         entity.BookingStatusConfirmed,
	}
	return s.repo.Booking.Create(ctx, booking)
}

func (s *checkoutService) recordCard(ctx context.Context, state checkout.State) error {
	month, year, err := parseExpiry(state.Payment.ExpiryDate)
	if err != nil {
		return err
	}

	record := &entity.CardValidation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		CheckoutID:     state.ID,
		CardholderName: state.Payment.CardName,
		MaskedNumber:   checkout.MaskCardNumber(state.Payment.CardNumber),
		CardToken:      uuid.New(),
		ExpiryMonth:    month,
		ExpiryYear:     year,
		PaymentMethod:  string(state.PaymentMethod),
	}
	return s.repo.CardValidation.Create(ctx, record)
}

func (s *checkoutService) event(kind string, state checkout.State, reference string, reason error) CheckoutEvent {
	ev := CheckoutEvent{
		Type:          kind,
		CheckoutID:    state.ID,
		FlightID:      state.Flight.FlightID,
		Origin:        state.Flight.Origin,
		Destination:   state.Flight.Destination,
		Passengers:    state.Flight.Passengers,
		Amount:        state.Price.GrandTotal,
		Currency:      checkout.Currency,
		PaymentMethod: string(state.PaymentMethod),
		Reference:     reference,
		OccurredAt:    s.now(),
	}
	if reason != nil {
		ev.Reason = reason.Error()
	}
	return ev
}

// publish is fire-and-forget; the broker never blocks the response.
func (s *checkoutService) publish(ev CheckoutEvent) {
	if s.events == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()

		if err := s.events.Publish(ctx, ev.CheckoutID, ev); err != nil {
			s.log.Error("Failed to publish checkout event",
				zap.Error(err),
				zap.String("type", ev.Type),
				zap.String("checkout_id", ev.CheckoutID))
		}
	}()
}

// parseExpiry splits a validated MM/YY value.
func parseExpiry(expiry string) (int, int, error) {
	mm, yy, ok := strings.Cut(expiry, "/")
	if !ok {
		return 0, 0, fmt.Errorf("malformed expiry %q", expiry)
	}
	month, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed expiry month: %w", err)
	}
	year, err := strconv.Atoi(yy)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed expiry year: %w", err)
	}
	return month, year, nil
}
