package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is an exchange rate observation, immutable once created.
type Rate struct {
	Pair      Pair
	Value     decimal.Decimal
	FetchedAt time.Time
	Provider  string
}

// StaleAt reports whether the rate is older than ttl at the given instant.
func (r Rate) StaleAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.FetchedAt) > ttl
}

func (r Rate) String() string {
	return "1 " + r.Pair.Source + " = " + r.Value.String() + " " + r.Pair.Target
}

// RateCache is the whole in-memory rate cache, persisted wholesale.
type RateCache map[Pair]Rate
