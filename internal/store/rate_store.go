package store

import (
	"fmt"
	"time"

	"wiserate/internal/domain"

	"github.com/shopspring/decimal"
)

// RateStore persists the whole rate cache as a single JSON file keyed by
// "SOURCE_TARGET".
type RateStore struct {
	path string
}

func NewRateStore(path string) *RateStore {
	return &RateStore{path: path}
}

type rateRecord struct {
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
	Source    string          `json:"source"`
}

// Load reads the persisted cache. A missing file yields an empty cache;
// a corrupt one fails with a persistence error rather than silently
// discarding entries.
func (s *RateStore) Load() (domain.RateCache, error) {
	records := make(map[string]rateRecord)
	if _, err := readJSON(s.path, &records); err != nil {
		return nil, err
	}

	cache := make(domain.RateCache, len(records))
	for key, rec := range records {
		pair, err := domain.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cache entry %q", domain.ErrPersistence, key)
		}
		if !rec.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: non-positive rate for %q", domain.ErrPersistence, key)
		}
		cache[pair] = domain.Rate{
			Pair:      pair,
			Value:     rec.Rate,
			FetchedAt: rec.FetchedAt,
			Provider:  rec.Source,
		}
	}
	return cache, nil
}

// Save atomically replaces the persisted cache with the given one.
func (s *RateStore) Save(cache domain.RateCache) error {
	records := make(map[string]rateRecord, len(cache))
	for pair, rate := range cache {
		records[pair.Key()] = rateRecord{
			Rate:      rate.Value,
			FetchedAt: rate.FetchedAt.UTC(),
			Source:    rate.Provider,
		}
	}
	return writeJSON(s.path, records)
}
