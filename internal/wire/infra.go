package wire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-booking/internal/checkout"
	"flight-booking/internal/gateway"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/cache"
	"flight-booking/pkg/messaging"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Infra holds the external collaborators the services run on.
type Infra struct {
	Deps    usecase.Dependencies
	closers []func() error
}

// NewInfra connects the flight cache, the event publisher and the payment
// processor. Redis and the broker are optional: when they cannot be reached
// the service runs without them.
func NewInfra(ctx context.Context, config *utils.Config, logger *zap.Logger) (*Infra, error) {
	infra := &Infra{}

	// Flight cache
	flightCache := cache.NewRedisCache(config.Redis, "flights", config.Search.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := flightCache.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Warn("Redis unavailable, flight cache disabled", zap.String("addr", config.Redis.Addr), zap.Error(err))
		flightCache.Close()
	} else {
		infra.Deps.Cache = flightCache
		infra.closers = append(infra.closers, flightCache.Close)
	}

	// Event publisher
	publisher, err := messaging.NewPublisher(config.Events, logger)
	if err != nil {
		logger.Warn("Event publisher unavailable, events disabled", zap.String("driver", config.Events.Driver), zap.Error(err))
		publisher = messaging.NopPublisher{}
	}
	infra.Deps.Events = publisher
	infra.closers = append(infra.closers, publisher.Close)

	// Payment processor
	payments, err := newPaymentProcessor(config.Payment, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Deps.Payments = payments

	return infra, nil
}

// Close releases every connection opened by NewInfra.
func (i *Infra) Close() error {
	var errs []error
	for _, closeFn := range i.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil
	return errors.Join(errs...)
}

func newPaymentProcessor(config utils.PaymentConfig, logger *zap.Logger) (checkout.PaymentProcessor, error) {
	simulated := gateway.NewSimulated(config.FailureRate, config.Latency, logger)

	switch strings.ToLower(config.Driver) {
	case "simulated", "":
		return simulated, nil
	case "authorizer":
		if config.AuthorizerURL == "" {
			return nil, errors.New("PAYMENT_AUTHORIZER_URL is required for the authorizer driver")
		}
		return gateway.NewHTTPAuthorizer(config.AuthorizerURL, config.Timeout, simulated, logger), nil
	default:
		return nil, fmt.Errorf("unknown payment driver %q", config.Driver)
	}
}
