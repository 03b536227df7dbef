package alert

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"wiserate/internal/domain"
	"wiserate/internal/metrics"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const checkWorkers = 5

type RateGetter interface {
	GetRate(ctx context.Context, pair domain.Pair, force bool) (domain.Rate, error)
}

type AlertStore interface {
	Load() (domain.AlertSet, error)
	Save(domain.AlertSet) error
}

// Status is the outcome of evaluating one alert.
type Status struct {
	Alert     domain.Alert
	Rate      domain.Rate
	Triggered bool
	Err       error
}

// Service owns the alert set and evaluates alerts against the exchange
// rate service.
type Service struct {
	store   AlertStore
	rates   RateGetter
	metrics *metrics.Metrics
	now     func() time.Time

	// mu serializes every read-modify-persist sequence on the alert set.
	mu     sync.Mutex
	alerts domain.AlertSet
}

// NewService loads the persisted alert set. Unlike the rate cache,
// alerts are user data: a corrupt file aborts startup instead of being
// silently replaced.
func NewService(store AlertStore, rates RateGetter, m *metrics.Metrics) (*Service, error) {
	alerts, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:   store,
		rates:   rates,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
		alerts:  alerts,
	}, nil
}

// Set creates or replaces the alert for a pair and persists immediately.
func (s *Service) Set(pair domain.Pair, threshold decimal.Decimal, direction domain.Direction) (domain.Alert, error) {
	if !threshold.IsPositive() {
		return domain.Alert{}, fmt.Errorf("%w: threshold must be positive, got %s", domain.ErrValidation, threshold)
	}

	a := domain.Alert{
		Pair:      pair,
		Threshold: threshold,
		Direction: direction,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous, existed := s.alerts[pair]
	s.alerts[pair] = a
	if err := s.store.Save(maps.Clone(s.alerts)); err != nil {
		if existed {
			s.alerts[pair] = previous
		} else {
			delete(s.alerts, pair)
		}
		return domain.Alert{}, err
	}
	return a, nil
}

// Remove deletes the alert for a pair. Removing a missing alert is a
// no-op, not an error.
func (s *Service) Remove(pair domain.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.alerts[pair]
	if !ok {
		return nil
	}
	delete(s.alerts, pair)
	if err := s.store.Save(maps.Clone(s.alerts)); err != nil {
		s.alerts[pair] = previous
		return err
	}
	return nil
}

// List returns all alerts ordered pair-lexicographically.
func (s *Service) List() []domain.Alert {
	s.mu.Lock()
	alerts := slices.Collect(maps.Values(s.alerts))
	s.mu.Unlock()

	slices.SortFunc(alerts, func(a, b domain.Alert) int {
		return strings.Compare(a.Pair.Key(), b.Pair.Key())
	})
	return alerts
}

// Check evaluates one alert against the current rate. The lookup goes
// through the cache (no force), so checking alerts does not defeat the
// TTL.
func (s *Service) Check(ctx context.Context, a domain.Alert) (Status, error) {
	s.metrics.AlertChecksTotal.Inc()
	rate, err := s.rates.GetRate(ctx, a.Pair, false)
	if err != nil {
		return Status{Alert: a, Err: err}, err
	}

	triggered := a.Triggered(rate.Value)
	if triggered {
		s.metrics.AlertsTriggeredTotal.Inc()
	}
	return Status{Alert: a, Rate: rate, Triggered: triggered}, nil
}

// CheckAll evaluates every alert with bounded concurrency. One alert
// failing (say, provider unreachable with no cached rate) never stops
// the others; its error rides along in the status.
func (s *Service) CheckAll(ctx context.Context) []Status {
	alerts := s.List()
	statuses := make([]Status, len(alerts))

	var g errgroup.Group
	g.SetLimit(checkWorkers)
	for i, a := range alerts {
		g.Go(func() error {
			status, _ := s.Check(ctx, a)
			statuses[i] = status
			return nil
		})
	}
	_ = g.Wait()
	return statuses
}

// MarkTriggered records when an alert last fired and persists. The alert
// itself stays: threshold alerts are persistent watches, not one-shots.
func (s *Service) MarkTriggered(pair domain.Pair, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[pair]
	if !ok {
		return nil
	}
	at = at.UTC()
	a.LastTriggered = &at
	s.alerts[pair] = a
	return s.store.Save(maps.Clone(s.alerts))
}
