package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("above")
	require.NoError(t, err)
	require.Equal(t, DirectionAbove, d)

	d, err = ParseDirection("below")
	require.NoError(t, err)
	require.Equal(t, DirectionBelow, d)

	_, err = ParseDirection("sideways")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAlert_Triggered_Above(t *testing.T) {
	a := Alert{Direction: DirectionAbove, Threshold: decimal.RequireFromString("1.10")}

	require.False(t, a.Triggered(decimal.RequireFromString("1.09")))
	require.True(t, a.Triggered(decimal.RequireFromString("1.10"))) // boundary counts
	require.True(t, a.Triggered(decimal.RequireFromString("1.11")))
}

func TestAlert_Triggered_Below(t *testing.T) {
	a := Alert{Direction: DirectionBelow, Threshold: decimal.RequireFromString("0.85")}

	require.True(t, a.Triggered(decimal.RequireFromString("0.84")))
	require.True(t, a.Triggered(decimal.RequireFromString("0.85"))) // boundary counts
	require.False(t, a.Triggered(decimal.RequireFromString("0.86")))
}

func TestRate_StaleAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := Rate{FetchedAt: now.Add(-time.Hour)}

	require.False(t, r.StaleAt(now, 2*time.Hour))
	require.False(t, r.StaleAt(now, time.Hour)) // exactly TTL old is still fresh
	require.True(t, r.StaleAt(now, 30*time.Minute))
}

func TestRate_String(t *testing.T) {
	r := Rate{
		Pair:  Pair{Source: "USD", Target: "EUR"},
		Value: decimal.RequireFromString("0.92"),
	}
	require.Equal(t, "1 USD = 0.92 EUR", r.String())
}
