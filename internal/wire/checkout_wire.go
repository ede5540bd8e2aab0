package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	formatHandler *adaptor.FormatHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	r.Post("/api/format", formatHandler.Format)

	// Checkout is open to guests; a signed-in user gets the passenger form prefilled
	r.With(middleware.OptionalSession(sessions, log)).Post("/api/checkout", checkoutHandler.Open)

	r.Route("/api/checkout/{id}", func(r chi.Router) {
		r.Get("/", checkoutHandler.Get)
		r.Delete("/", checkoutHandler.Discard)

		r.Put("/passenger", checkoutHandler.UpdatePassenger)
		r.Put("/payment", checkoutHandler.UpdatePayment)
		r.Post("/services/{service}", checkoutHandler.ToggleService)

		r.Post("/advance", checkoutHandler.Advance)
		r.Post("/retreat", checkoutHandler.Retreat)
		r.Post("/submit", checkoutHandler.Submit)
	})
}
