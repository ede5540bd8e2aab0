package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/flights"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrSearchNotFound = errors.New("search not found")

// finished searches are kept around this long for status polling
const searchRetention = 10 * time.Minute

type SearchService interface {
	Search(ctx context.Context, req request.FlightSearchRequest) (*response.FlightListResponse, error)
	StartSearch(req request.FlightSearchRequest) (*response.SearchStatusResponse, error)
	SearchStatus(key string) (*response.SearchStatusResponse, error)
	CancelSearch(key string) error
	Close()
}

type pendingSearch struct {
	search     flights.SearchContext
	results    *flights.Results
	cancel     context.CancelFunc
	done       bool
	err        error
	finishedAt time.Time
}

type searchService struct {
	cache    FlightCache
	generate flights.GenerateFunc
	delay    time.Duration
	count    int
	log      *zap.Logger
	group    singleflight.Group

	mu      sync.Mutex
	pending map[string]*pendingSearch
	ctx     context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// NewSearchService builds the results flow service. cache may be nil.
func NewSearchService(cache FlightCache, config utils.SearchConfig, log *zap.Logger) SearchService {
	return newSearchService(cache, flights.Generate, config, log)
}

func newSearchService(cache FlightCache, generate flights.GenerateFunc, config utils.SearchConfig, log *zap.Logger) *searchService {
	ctx, stop := context.WithCancel(context.Background())
	return &searchService{
		cache:    cache,
		generate: generate,
		delay:    config.Delay,
		count:    config.ResultCount,
		log:      log.With(zap.String("service", "search")),
		pending:  map[string]*pendingSearch{},
		ctx:      ctx,
		stop:     stop,
	}
}

// Search loads the listing synchronously. Concurrent identical searches
// share one load, and finished listings are served from the cache.
func (s *searchService) Search(ctx context.Context, req request.FlightSearchRequest) (*response.FlightListResponse, error) {
	sc := req.SearchContext()
	if !sc.Complete() {
		return nil, flights.ErrMissingSearchContext
	}
	key := sc.Key()

	if quotes, ok := s.cached(ctx, key); ok {
		return &response.FlightListResponse{Search: sc, Key: key, Flights: quotes, Cached: true}, nil
	}

	// the shared load outlives any single caller; each caller only gives up
	// its own wait
	ch := s.group.DoChan(key, func() (any, error) {
		quotes, err := flights.NewResults(s.delay, s.count, s.generate).Load(s.ctx, sc)
		if err != nil {
			return nil, err
		}
		s.store(s.ctx, key, quotes)
		return quotes, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.log.Warn("Search failed", zap.String("key", key), zap.Error(res.Err))
			return nil, res.Err
		}
		s.log.Debug("Search loaded", zap.String("key", key), zap.Bool("shared", res.Shared))
		return &response.FlightListResponse{Search: sc, Key: key, Flights: res.Val.([]flights.FlightQuote)}, nil
	}
}

// StartSearch kicks off a background load and returns at once with the
// loading flag set. Starting a search whose key is already tracked returns
// the existing one.
func (s *searchService) StartSearch(req request.FlightSearchRequest) (*response.SearchStatusResponse, error) {
	sc := req.SearchContext()
	if !sc.Complete() {
		return nil, flights.ErrMissingSearchContext
	}
	key := sc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return nil, flights.ErrResultsClosed
	}
	s.pruneLocked(time.Now())

	if p, ok := s.pending[key]; ok {
		return s.statusLocked(key, p), nil
	}

	ctx, cancel := context.WithCancel(s.ctx)
	p := &pendingSearch{
		search:  sc,
		results: flights.NewResults(s.delay, s.count, s.generate),
		cancel:  cancel,
	}
	s.pending[key] = p

	s.wg.Add(1)
	go s.run(ctx, key, sc, p)

	return s.statusLocked(key, p), nil
}

func (s *searchService) run(ctx context.Context, key string, sc flights.SearchContext, p *pendingSearch) {
	defer s.wg.Done()
	defer p.cancel()

	quotes, err := p.results.Load(ctx, sc)
	if err == nil {
		s.store(ctx, key, quotes)
	} else if !errors.Is(err, flights.ErrResultsClosed) && !errors.Is(err, context.Canceled) {
		s.log.Warn("Background search failed", zap.String("key", key), zap.Error(err))
	}

	s.mu.Lock()
	p.done = true
	p.err = err
	p.finishedAt = time.Now()
	s.mu.Unlock()
}

func (s *searchService) SearchStatus(key string) (*response.SearchStatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return nil, ErrSearchNotFound
	}
	return s.statusLocked(key, p), nil
}

// CancelSearch tears the flow down; a load still waiting is dropped.
func (s *searchService) CancelSearch(key string) error {
	s.mu.Lock()
	p, ok := s.pending[key]
	delete(s.pending, key)
	s.mu.Unlock()

	if !ok {
		return ErrSearchNotFound
	}
	p.results.Close()
	p.cancel()
	return nil
}

func (s *searchService) Close() {
	s.mu.Lock()
	s.stop()
	for key, p := range s.pending {
		p.results.Close()
		p.cancel()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *searchService) statusLocked(key string, p *pendingSearch) *response.SearchStatusResponse {
	status := &response.SearchStatusResponse{
		Key:     key,
		Search:  p.search,
		Loading: !p.done || p.results.Loading(),
		Flights: p.results.Flights(),
	}
	if status.Flights == nil {
		status.Flights = []flights.FlightQuote{}
	}
	if p.err != nil {
		status.Error = p.err.Error()
	}
	return status
}

func (s *searchService) pruneLocked(now time.Time) {
	for key, p := range s.pending {
		if p.done && now.Sub(p.finishedAt) > searchRetention {
			p.results.Close()
			delete(s.pending, key)
		}
	}
}

func (s *searchService) cached(ctx context.Context, key string) ([]flights.FlightQuote, bool) {
	if s.cache == nil {
		return nil, false
	}
	var quotes []flights.FlightQuote
	hit, err := s.cache.GetJSON(ctx, key, &quotes)
	if err != nil {
		s.log.Warn("Flight cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return quotes, hit
}

func (s *searchService) store(ctx context.Context, key string, quotes []flights.FlightQuote) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, quotes); err != nil {
		s.log.Warn("Flight cache write failed", zap.String("key", key), zap.Error(err))
	}
}
