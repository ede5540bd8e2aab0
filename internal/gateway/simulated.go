package gateway

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"flight-booking/internal/checkout"

	"go.uber.org/zap"
)

var failureReasons = []string{
	"Insufficient funds",
	"Card declined",
	"Expired card",
	"Bank declined transaction",
	"Daily limit exceeded",
}

// Simulated settles payments locally after a fixed latency, declining a
// configurable share of them.
type Simulated struct {
	mu          sync.Mutex
	rng         *rand.Rand
	failureRate float64
	latency     time.Duration
	log         *zap.Logger
}

var _ checkout.PaymentProcessor = (*Simulated)(nil)

func NewSimulated(failureRate float64, latency time.Duration, log *zap.Logger) *Simulated {
	return &Simulated{
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		failureRate: clampRate(failureRate),
		latency:     latency,
		log:         log.With(zap.String("gateway", "simulated")),
	}
}

func (s *Simulated) Submit(ctx context.Context, req checkout.PaymentRequest) (checkout.PaymentReceipt, error) {
	s.log.Info("Processing payment",
		zap.String("checkout_id", req.CheckoutID),
		zap.String("method", string(req.Method)),
		zap.Int64("amount", req.Amount),
	)

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Warn("Payment timed out", zap.String("checkout_id", req.CheckoutID))
			return checkout.PaymentReceipt{}, ErrTimeout
		case <-timer.C:
		}
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	reason := failureReasons[s.rng.IntN(len(failureReasons))]
	s.mu.Unlock()

	if roll < s.failureRate {
		s.log.Info("Payment declined",
			zap.String("checkout_id", req.CheckoutID),
			zap.String("reason", reason),
		)
		return checkout.PaymentReceipt{}, declined(reason)
	}

	receipt := newReceipt(req.Amount)
	s.log.Info("Payment processed",
		zap.String("checkout_id", req.CheckoutID),
		zap.String("reference", receipt.Reference),
	)
	return receipt, nil
}

func clampRate(rate float64) float64 {
	return min(max(rate, 0), 1)
}
