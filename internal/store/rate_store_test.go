package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wiserate/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRateStore_Load_MissingFile(t *testing.T) {
	s := NewRateStore(filepath.Join(t.TempDir(), "currencies.json"))

	cache, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, cache)
}

func TestRateStore_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.json")
	s := NewRateStore(path)

	pair := domain.Pair{Source: "USD", Target: "EUR"}
	fetchedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := domain.RateCache{
		pair: {
			Pair:      pair,
			Value:     decimal.RequireFromString("0.92"),
			FetchedAt: fetchedAt,
			Provider:  "exchangerate-api",
		},
	}

	require.NoError(t, s.Save(cache))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[pair]
	require.Equal(t, pair, got.Pair)
	require.True(t, got.Value.Equal(decimal.RequireFromString("0.92")))
	require.True(t, got.FetchedAt.Equal(fetchedAt))
	require.Equal(t, "exchangerate-api", got.Provider)
}

func TestRateStore_Save_PersistsRateAsString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.json")
	s := NewRateStore(path)

	pair := domain.Pair{Source: "USD", Target: "EUR"}
	require.NoError(t, s.Save(domain.RateCache{
		pair: {Pair: pair, Value: decimal.RequireFromString("0.92"), FetchedAt: time.Now()},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"USD_EUR"`)
	require.Contains(t, string(data), `"rate": "0.92"`)
}

func TestRateStore_Load_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewRateStore(path).Load()
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRateStore_Load_InvalidKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"USDEUR": {"rate": "0.92", "fetched_at": "2025-06-01T12:00:00Z", "source": "x"}}`), 0o644))

	_, err := NewRateStore(path).Load()
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRateStore_Load_NonPositiveRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"USD_EUR": {"rate": "0", "fetched_at": "2025-06-01T12:00:00Z", "source": "x"}}`), 0o644))

	_, err := NewRateStore(path).Load()
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRateStore_Save_CreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "currencies.json")
	s := NewRateStore(path)

	require.NoError(t, s.Save(domain.RateCache{}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestRateStore_Save_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "currencies.json")
	require.NoError(t, NewRateStore(path).Save(domain.RateCache{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "currencies.json", entries[0].Name())
}
