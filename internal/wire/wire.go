package wire

import (
	"context"
	"net/http"
	"time"

	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

// App holds the router and the background work started for it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service

	cancel      context.CancelFunc
	unsubscribe func()
	done        chan struct{}
}

// Wiring builds services and handlers and starts the background jobs.
// Close must be called on shutdown.
func Wiring(
	ctx context.Context,
	repo *repository.Repository,
	deps usecase.Dependencies,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	if err := service.Auth.EnsureAdmin(ctx, config.Admin.Name, config.Admin.Email, config.Admin.Password); err != nil {
		logger.Error("Failed to bootstrap admin account", zap.Error(err))
	}

	auditLog := logger.With(zap.String("component", "session_audit"))
	unsubscribe := service.Auth.Subscribe(func(ev usecase.SessionEvent) {
		auditLog.Info("Session changed",
			zap.String("type", string(ev.Type)),
			zap.String("user_id", ev.UserID.String()),
			zap.Time("at", ev.At))
	})

	bgCtx, cancel := context.WithCancel(context.Background())
	app := &App{
		Router:      setupRouter(handler, service, logger),
		Service:     service,
		cancel:      cancel,
		unsubscribe: unsubscribe,
		done:        make(chan struct{}, 2),
	}

	go func() {
		defer func() { app.done <- struct{}{} }()
		service.Checkout.Run(bgCtx)
	}()
	go func() {
		defer func() { app.done <- struct{}{} }()
		cleanSessions(bgCtx, repo.Session, logger)
	}()

	return app
}

// Close stops background jobs and tears down in-flight searches and
// checkouts.
func (a *App) Close() {
	a.cancel()
	a.unsubscribe()
	<-a.done
	<-a.done
	a.Service.Search.Close()
	a.Service.Checkout.Close()
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, service.Auth, logger)
	wireSearch(r, handler.Search)
	wireCheckout(r, handler.Checkout, handler.Format, service.Auth, logger)
	wireBooking(r, handler.Booking, service.Auth, logger)
	wireAdmin(r, handler.Admin, service.Auth, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func cleanSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Expired sessions cleaned", zap.Int64("count", n))
			}
		}
	}
}
