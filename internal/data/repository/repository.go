package repository

import (
	"flight-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	CardValidation CardValidationRepository
	Booking        BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		CardValidation: NewCardValidationRepository(db, log),
		Booking:        NewBookingRepository(db, log),
	}
}
