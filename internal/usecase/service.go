package usecase

import (
	"flight-booking/internal/checkout"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Search   SearchService
	Checkout CheckoutService
	Booking  BookingService
	Admin    AdminService
}

// Dependencies are the infrastructure collaborators built by the wiring
// layer. Cache and Events may be nil.
type Dependencies struct {
	Cache    FlightCache
	Events   EventPublisher
	Payments checkout.PaymentProcessor
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Search:   NewSearchService(deps.Cache, config.Search, log),
		Checkout: NewCheckoutService(repo, deps.Payments, deps.Events, config.Checkout, log),
		Booking:  NewBookingService(repo.Booking, log),
		Admin:    NewAdminService(repo.CardValidation, log),
	}
}
