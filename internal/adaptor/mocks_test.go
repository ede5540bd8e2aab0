package adaptor

import (
	"context"
	"time"

	"flight-booking/internal/checkout"
	"flight-booking/internal/data/entity"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) CurrentSession(ctx context.Context, token string) (*entity.Session, *entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Session), args.Get(1).(*entity.User), args.Error(2)
}

func (m *MockAuthService) Subscribe(fn func(usecase.SessionEvent)) func() {
	args := m.Called(fn)
	return args.Get(0).(func())
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, req request.FlightSearchRequest) (*response.FlightListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.FlightListResponse), args.Error(1)
}

func (m *MockSearchService) StartSearch(req request.FlightSearchRequest) (*response.SearchStatusResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SearchStatusResponse), args.Error(1)
}

func (m *MockSearchService) SearchStatus(key string) (*response.SearchStatusResponse, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SearchStatusResponse), args.Error(1)
}

func (m *MockSearchService) CancelSearch(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockSearchService) Close() {
	m.Called()
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) checkout(args mock.Arguments) (*response.CheckoutResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) transition(args mock.Arguments) (*response.TransitionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TransitionResponse), args.Error(1)
}

func (m *MockCheckoutService) Open(ctx context.Context, flight checkout.FlightContext, userID *uuid.UUID) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(ctx, flight, userID))
}

func (m *MockCheckoutService) Get(id string) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(id))
}

func (m *MockCheckoutService) UpdatePassenger(id string, req request.UpdatePassengerRequest) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(id, req))
}

func (m *MockCheckoutService) UpdatePayment(id string, req request.UpdatePaymentRequest) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(id, req))
}

func (m *MockCheckoutService) ToggleService(id string, svc checkout.Service) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(id, svc))
}

func (m *MockCheckoutService) Advance(id string) (*response.TransitionResponse, error) {
	return m.transition(m.Called(id))
}

func (m *MockCheckoutService) Retreat(id string) (*response.TransitionResponse, error) {
	return m.transition(m.Called(id))
}

func (m *MockCheckoutService) Submit(ctx context.Context, id string) (*response.CheckoutResponse, error) {
	return m.checkout(m.Called(ctx, id))
}

func (m *MockCheckoutService) Discard(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockCheckoutService) Sweep(now time.Time) int {
	return m.Called(now).Int(0)
}

func (m *MockCheckoutService) Run(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockCheckoutService) Close() {
	m.Called()
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListCardValidations(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CardValidationResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.CardValidationResponse]), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetUserBooking(ctx context.Context, userID uuid.UUID, reference string) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}
