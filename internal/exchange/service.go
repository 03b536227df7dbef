package exchange

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"wiserate/internal/domain"
	"wiserate/internal/metrics"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	updateWorkers = 5
	// rejectionTTL is how long a provider 4xx for a pair is remembered so
	// repeated lookups for a known-bad pair skip the network.
	rejectionTTL = time.Minute
)

type Fetcher interface {
	FetchRate(ctx context.Context, pair domain.Pair) (domain.Rate, error)
}

type RateStore interface {
	Load() (domain.RateCache, error)
	Save(domain.RateCache) error
}

// Service answers rate lookups from the local cache when fresh, fetches
// otherwise, and prefers a stale cached rate over no answer at all when
// the provider is unreachable.
type Service struct {
	store   RateStore
	fetcher Fetcher
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	// mu serializes every read-modify-persist sequence on the cache.
	mu    sync.Mutex
	cache domain.RateCache

	flight   singleflight.Group
	rejected *ristretto.Cache
}

// NewService loads the persisted cache and wires the service. A corrupt
// rate cache file is logged and replaced with an empty cache: cached
// rates are disposable, refusing to start over them would help nobody.
func NewService(store RateStore, fetcher Fetcher, ttl time.Duration, m *metrics.Metrics) (*Service, error) {
	cache, err := store.Load()
	if err != nil {
		logrus.WithError(err).Warn("Rate cache unreadable, starting with an empty cache")
		cache = make(domain.RateCache)
	}

	rejected, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1024,
		MaxCost:     128,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rejection cache: %w", err)
	}

	return &Service{
		store:    store,
		fetcher:  fetcher,
		ttl:      ttl,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
		cache:    cache,
		rejected: rejected,
	}, nil
}

func (s *Service) Close() { s.rejected.Close() }

// GetRate returns the rate for a pair. With force unset, a cache entry
// younger than the TTL is returned without touching the network.
// Concurrent calls for the same pair share a single in-flight fetch.
// When the fetch fails transiently and any cached entry exists, the
// stale entry is returned instead of the error.
func (s *Service) GetRate(ctx context.Context, pair domain.Pair, force bool) (domain.Rate, error) {
	if !force {
		if cached, ok := s.cached(pair); ok && !cached.StaleAt(s.now(), s.ttl) {
			s.metrics.CacheHitsTotal.Inc()
			return cached, nil
		}
		if err, ok := s.recentRejection(pair); ok {
			return domain.Rate{}, err
		}
	}
	s.metrics.CacheMissesTotal.Inc()

	v, err, _ := s.flight.Do(pair.Key(), func() (any, error) {
		return s.fetchAndStore(ctx, pair)
	})
	if err == nil {
		return v.(domain.Rate), nil
	}

	if errors.Is(err, domain.ErrTransient) || errors.Is(err, domain.ErrRateLimited) {
		if stale, ok := s.cached(pair); ok {
			logrus.WithError(err).WithField("pair", pair.String()).
				Warn("Provider unavailable, returning stale cached rate")
			s.metrics.StaleFallbacksTotal.Inc()
			return stale, nil
		}
	}
	return domain.Rate{}, err
}

// Outcome is one pair's result in a batch update.
type Outcome struct {
	Rate domain.Rate
	Err  error
}

// UpdateAll force-fetches every pair with bounded concurrency. A failed
// pair never aborts the batch; each outcome is reported independently.
func (s *Service) UpdateAll(ctx context.Context, pairs []domain.Pair) map[domain.Pair]Outcome {
	results := make(map[domain.Pair]Outcome, len(pairs))
	var resultsMu sync.Mutex

	var g errgroup.Group
	g.SetLimit(updateWorkers)
	for _, pair := range pairs {
		g.Go(func() error {
			r, err := s.GetRate(ctx, pair, true)
			resultsMu.Lock()
			results[pair] = Outcome{Rate: r, Err: err}
			resultsMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Snapshot returns all cached rates, fresh and stale, sorted by pair.
func (s *Service) Snapshot() []domain.Rate {
	s.mu.Lock()
	rates := slices.Collect(maps.Values(s.cache))
	s.mu.Unlock()

	slices.SortFunc(rates, func(a, b domain.Rate) int {
		return strings.Compare(a.Pair.Key(), b.Pair.Key())
	})
	return rates
}

func (s *Service) cached(pair domain.Pair) (domain.Rate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.cache[pair]
	return r, ok
}

func (s *Service) recentRejection(pair domain.Pair) (error, bool) {
	v, ok := s.rejected.Get(pair.Key())
	if !ok {
		return nil, false
	}
	err, ok := v.(error)
	return err, ok
}

func (s *Service) fetchAndStore(ctx context.Context, pair domain.Pair) (domain.Rate, error) {
	s.metrics.FetchesTotal.Inc()
	fetched, err := s.fetcher.FetchRate(ctx, pair)
	if err != nil {
		s.metrics.FetchErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		if errors.Is(err, domain.ErrClient) {
			s.rejected.SetWithTTL(pair.Key(), err, 1, rejectionTTL)
		}
		return domain.Rate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[pair] = fetched
	// The fetched rate stays in memory even if the save fails: the error
	// is surfaced, the data is not dropped.
	if err = s.store.Save(maps.Clone(s.cache)); err != nil {
		return domain.Rate{}, err
	}
	return fetched, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrClient):
		return "client"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrTransient):
		return "transient"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	}
	return "other"
}
