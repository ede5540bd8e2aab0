package flights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResults_MissingContext(t *testing.T) {
	r := NewResults(0, 5, nil)

	_, err := r.Load(context.Background(), SearchContext{Origin: "BOG"})
	assert.ErrorIs(t, err, ErrMissingSearchContext)
	assert.False(t, r.Loading())
	assert.Empty(t, r.Flights())
}

func TestResults_LoadUsesSearchSeed(t *testing.T) {
	var gotReq GenerateRequest
	var gotSeed int64
	gen := func(req GenerateRequest, seed int64) []FlightQuote {
		gotReq, gotSeed = req, seed
		return Generate(req, seed)
	}
	r := NewResults(0, 0, gen)
	sc := SearchContext{Origin: "Bogotá (BOG)", Destination: "Medellín (MDE)", DepartureDate: "2026-05-01", Passengers: 0}

	quotes, err := r.Load(context.Background(), sc)
	require.NoError(t, err)

	assert.Len(t, quotes, DefaultResultCount)
	assert.Equal(t, 1, gotReq.Passengers)
	assert.Equal(t, DefaultResultCount, gotReq.Count)
	assert.Equal(t, Seed("Bogotá (BOG)-Medellín (MDE)-2026-05-01-1"), gotSeed)
	assert.Equal(t, quotes, r.Flights())
	assert.False(t, r.Loading())
}

func TestResults_LoadingDuringDelay(t *testing.T) {
	r := NewResults(200*time.Millisecond, 5, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Load(context.Background(), SearchContext{Origin: "BOG", Destination: "MDE"})
	}()

	assert.Eventually(t, r.Loading, time.Second, 5*time.Millisecond)
	<-done
	assert.False(t, r.Loading())
	assert.Len(t, r.Flights(), 5)
}

func TestResults_ContextCancelAbortsWait(t *testing.T) {
	r := NewResults(time.Hour, 5, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Load(ctx, SearchContext{Origin: "BOG", Destination: "MDE"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, r.Loading())
	assert.Empty(t, r.Flights())
}

func TestResults_CloseDropsLateResults(t *testing.T) {
	release := make(chan struct{})
	gen := func(req GenerateRequest, seed int64) []FlightQuote {
		<-release
		return Generate(req, seed)
	}
	r := NewResults(0, 5, gen)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.Load(context.Background(), SearchContext{Origin: "BOG", Destination: "MDE"})
		errCh <- err
	}()

	assert.Eventually(t, r.Loading, time.Second, 5*time.Millisecond)
	r.Close()
	close(release)

	assert.ErrorIs(t, <-errCh, ErrResultsClosed)
	assert.Empty(t, r.Flights())

	_, err := r.Load(context.Background(), SearchContext{Origin: "BOG", Destination: "MDE"})
	assert.ErrorIs(t, err, ErrResultsClosed)
}
