package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAbove:
		return DirectionAbove, nil
	case DirectionBelow:
		return DirectionBelow, nil
	}
	return "", fmt.Errorf("%w: direction must be %q or %q, got %q", ErrValidation, DirectionAbove, DirectionBelow, s)
}

// Alert is a persistent threshold watch on a currency pair. One alert per
// pair; setting a new one replaces the old.
type Alert struct {
	Pair          Pair
	Threshold     decimal.Decimal
	Direction     Direction
	CreatedAt     time.Time
	LastTriggered *time.Time
}

// Triggered reports whether the given rate value crosses the threshold.
// The comparison is inclusive on both sides of the boundary.
func (a Alert) Triggered(value decimal.Decimal) bool {
	if a.Direction == DirectionAbove {
		return value.GreaterThanOrEqual(a.Threshold)
	}
	return value.LessThanOrEqual(a.Threshold)
}

// AlertSet holds all configured alerts, persisted wholesale.
type AlertSet map[Pair]Alert
