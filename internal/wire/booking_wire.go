package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(sessions, log))

		r.Get("/", bookingHandler.GetUserBookings)
		r.Get("/{reference}", bookingHandler.GetUserBooking)
	})
}
