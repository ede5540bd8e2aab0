package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/login", authHandler.Login)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.LoginForm)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(sessions, log)).Post("/api/logout", authHandler.Logout)
	r.With(middleware.PageSession(sessions, log)).Post("/logout", authHandler.LogoutForm)
}
