package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/flights"
	"flight-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bogToMde() request.FlightSearchRequest {
	return request.FlightSearchRequest{
		Origin:        "BOG",
		Destination:   "MDE",
		DepartureDate: "2025-03-15",
		Passengers:    2,
		TripType:      "oneWay",
	}
}

func countingGenerate(calls *atomic.Int32) flights.GenerateFunc {
	return func(req flights.GenerateRequest, seed int64) []flights.FlightQuote {
		calls.Add(1)
		return flights.Generate(req, seed)
	}
}

func TestSearchService_Search_MissingContext(t *testing.T) {
	svc := newSearchService(nil, flights.Generate, utils.SearchConfig{}, testLogger())
	defer svc.Close()

	_, err := svc.Search(context.Background(), request.FlightSearchRequest{Origin: "BOG"})
	assert.ErrorIs(t, err, flights.ErrMissingSearchContext)
}

func TestSearchService_Search_CacheHit(t *testing.T) {
	var calls atomic.Int32
	cache := &MockCache{}
	cached := []flights.FlightQuote{{ID: "FL-1000", Origin: "BOG", Destination: "MDE"}}
	cache.On("GetJSON", mock.Anything, "BOG-MDE-2025-03-15-2", mock.Anything).
		Run(func(args mock.Arguments) {
			dst := args.Get(2).(*[]flights.FlightQuote)
			*dst = cached
		}).
		Return(true, nil)

	svc := newSearchService(cache, countingGenerate(&calls), utils.SearchConfig{}, testLogger())
	defer svc.Close()

	resp, err := svc.Search(context.Background(), bogToMde())
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, cached, resp.Flights)
	assert.Equal(t, "BOG-MDE-2025-03-15-2", resp.Key)
	assert.Zero(t, calls.Load())
	cache.AssertExpectations(t)
}

func TestSearchService_Search_CacheMissStores(t *testing.T) {
	var calls atomic.Int32
	cache := &MockCache{}
	cache.On("GetJSON", mock.Anything, "BOG-MDE-2025-03-15-2", mock.Anything).Return(false, nil)
	cache.On("SetJSON", mock.Anything, "BOG-MDE-2025-03-15-2", mock.Anything).Return(nil)

	svc := newSearchService(cache, countingGenerate(&calls), utils.SearchConfig{ResultCount: 5}, testLogger())
	defer svc.Close()

	resp, err := svc.Search(context.Background(), bogToMde())
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Len(t, resp.Flights, 5)
	assert.Equal(t, int32(1), calls.Load())
	cache.AssertExpectations(t)
}

func TestSearchService_Search_Deterministic(t *testing.T) {
	svc := newSearchService(nil, flights.Generate, utils.SearchConfig{}, testLogger())
	defer svc.Close()

	first, err := svc.Search(context.Background(), bogToMde())
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), bogToMde())
	require.NoError(t, err)

	assert.Equal(t, first.Flights, second.Flights)
}

func TestSearchService_Search_SharesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	svc := newSearchService(nil, countingGenerate(&calls),
		utils.SearchConfig{Delay: 300 * time.Millisecond}, testLogger())
	defer svc.Close()

	start := make(chan struct{})
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Search(context.Background(), bogToMde())
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchService_Search_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var calls atomic.Int32
	svc := newSearchService(nil, countingGenerate(&calls),
		utils.SearchConfig{Delay: 300 * time.Millisecond, ResultCount: 5}, testLogger())
	defer svc.Close()

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Search(firstCtx, bogToMde())
		firstErr <- err
	}()

	// let the first caller own the shared load before the second joins
	time.Sleep(50 * time.Millisecond)
	time.AfterFunc(50*time.Millisecond, cancelFirst)

	resp, err := svc.Search(context.Background(), bogToMde())
	require.NoError(t, err)
	assert.Len(t, resp.Flights, 5)

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchService_StartSearch_LoadsInBackground(t *testing.T) {
	svc := newSearchService(nil, flights.Generate,
		utils.SearchConfig{Delay: 50 * time.Millisecond, ResultCount: 5}, testLogger())
	defer svc.Close()

	status, err := svc.StartSearch(bogToMde())
	require.NoError(t, err)
	assert.True(t, status.Loading)
	assert.Empty(t, status.Flights)
	assert.Equal(t, "BOG", status.Search.Origin)

	assert.Eventually(t, func() bool {
		s, err := svc.SearchStatus(status.Key)
		return err == nil && !s.Loading && len(s.Flights) == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSearchService_StartSearch_ReusesPending(t *testing.T) {
	var calls atomic.Int32
	svc := newSearchService(nil, countingGenerate(&calls),
		utils.SearchConfig{Delay: 50 * time.Millisecond}, testLogger())
	defer svc.Close()

	first, err := svc.StartSearch(bogToMde())
	require.NoError(t, err)
	second, err := svc.StartSearch(bogToMde())
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)

	assert.Eventually(t, func() bool {
		s, err := svc.SearchStatus(first.Key)
		return err == nil && !s.Loading
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchService_CancelSearch_DropsPendingLoad(t *testing.T) {
	var calls atomic.Int32
	svc := newSearchService(nil, countingGenerate(&calls),
		utils.SearchConfig{Delay: time.Hour}, testLogger())
	defer svc.Close()

	status, err := svc.StartSearch(bogToMde())
	require.NoError(t, err)

	require.NoError(t, svc.CancelSearch(status.Key))

	_, err = svc.SearchStatus(status.Key)
	assert.ErrorIs(t, err, ErrSearchNotFound)
	assert.ErrorIs(t, svc.CancelSearch(status.Key), ErrSearchNotFound)
	assert.Zero(t, calls.Load())
}

func TestSearchService_StartSearch_MissingContext(t *testing.T) {
	svc := newSearchService(nil, flights.Generate, utils.SearchConfig{}, testLogger())
	defer svc.Close()

	_, err := svc.StartSearch(request.FlightSearchRequest{Destination: "MDE"})
	assert.ErrorIs(t, err, flights.ErrMissingSearchContext)
}

func TestSearchService_Close_RejectsNewSearches(t *testing.T) {
	svc := newSearchService(nil, flights.Generate, utils.SearchConfig{Delay: time.Hour}, testLogger())

	_, err := svc.StartSearch(bogToMde())
	require.NoError(t, err)

	svc.Close()

	_, err = svc.StartSearch(bogToMde())
	assert.ErrorIs(t, err, flights.ErrResultsClosed)
}
