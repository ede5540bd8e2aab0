package adaptor

import (
	"flight-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Search   *SearchHandler
	Checkout *CheckoutHandler
	Format   *FormatHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Search:   NewSearchHandler(service.Search, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Format:   NewFormatHandler(),
		Booking:  NewBookingHandler(service.Booking, log),
		Admin:    NewAdminHandler(service.Admin, log),
	}
}
