package flights

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

const (
	DefaultDelay       = 1500 * time.Millisecond
	DefaultResultCount = 5
)

var (
	ErrMissingSearchContext = errors.New("origin and destination are required")
	ErrResultsClosed        = errors.New("results flow closed")
)

// Results drives one results page: it flips the loading flag, waits out the
// artificial latency and stores the generated listing.
type Results struct {
	mu       sync.Mutex
	delay    time.Duration
	count    int
	generate GenerateFunc

	loading bool
	flights []FlightQuote
	closed  bool
}

func NewResults(delay time.Duration, count int, generate GenerateFunc) *Results {
	if delay < 0 {
		delay = 0
	}
	if count <= 0 {
		count = DefaultResultCount
	}
	if generate == nil {
		generate = Generate
	}
	return &Results{delay: delay, count: count, generate: generate}
}

// Load generates the listing for sc. It returns ErrMissingSearchContext
// without touching state when origin or destination is absent, and
// ErrResultsClosed when the flow was torn down while waiting.
func (r *Results) Load(ctx context.Context, sc SearchContext) ([]FlightQuote, error) {
	if !sc.Complete() {
		return nil, ErrMissingSearchContext
	}
	if sc.Passengers < 1 {
		sc.Passengers = 1
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrResultsClosed
	}
	r.loading = true
	r.mu.Unlock()

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.mu.Lock()
			r.loading = false
			r.mu.Unlock()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	quotes := r.generate(GenerateRequest{
		Origin:      sc.Origin,
		Destination: sc.Destination,
		Date:        sc.DepartureDate,
		Passengers:  sc.Passengers,
		Count:       r.count,
	}, Seed(sc.Key()))

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrResultsClosed
	}
	r.flights = quotes
	r.loading = false
	return slices.Clone(quotes), nil
}

func (r *Results) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Results) Flights() []FlightQuote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.flights)
}

// Close tears the flow down. Results arriving afterwards are dropped.
func (r *Results) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.loading = false
	r.flights = nil
}
