package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	// ==================== ADMIN API ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(sessions, log)) // Must be authenticated
		r.Use(middleware.Admin(log))                 // Must be admin

		r.Get("/card-validations", adminHandler.ListCardValidations)
	})

	// ==================== ADMIN PAGES ====================
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.PageSession(sessions, log))
		r.Use(middleware.AdminPage(log))

		r.Get("/card-validations", adminHandler.CardValidationsPage)
	})
}
