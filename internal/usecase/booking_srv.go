package usecase

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingService interface {
	GetUserBookings(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetUserBooking(ctx context.Context, userID uuid.UUID, reference string) (*response.BookingResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewBookingService(bookings repository.BookingRepository, log *zap.Logger) BookingService {
	return &bookingService{
		bookings: bookings,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.bookings.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	total, err := s.bookings.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// GetUserBooking hides bookings owned by someone else behind ErrBookingNotFound.
func (s *bookingService) GetUserBooking(ctx context.Context, userID uuid.UUID, reference string) (*response.BookingResponse, error) {
	booking, err := s.bookings.FindByReference(ctx, reference)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("reference", reference))
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking == nil || booking.UserID == nil || *booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
