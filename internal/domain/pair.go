package domain

import (
	"fmt"
	"strings"
)

// Pair is an ordered (source, target) currency pair. Codes are normalized
// to uppercase; source and target are always different.
type Pair struct {
	Source string
	Target string
}

// NewPair normalizes both codes and checks the structural invariants.
// Whether a code is an actual ISO-4217 currency is the currency
// validator's concern, not the pair's.
func NewPair(source, target string) (Pair, error) {
	source = strings.ToUpper(strings.TrimSpace(source))
	target = strings.ToUpper(strings.TrimSpace(target))

	for _, code := range []string{source, target} {
		if len(code) != 3 || !isAlpha(code) {
			return Pair{}, fmt.Errorf("%w: currency code %q must be 3 letters", ErrValidation, code)
		}
	}
	if source == target {
		return Pair{}, fmt.Errorf("%w: source and target must be different", ErrValidation)
	}
	return Pair{Source: source, Target: target}, nil
}

// ParseKey is the inverse of Key, used when loading persisted stores.
func ParseKey(key string) (Pair, error) {
	source, target, ok := strings.Cut(key, "_")
	if !ok {
		return Pair{}, fmt.Errorf("%w: malformed pair key %q", ErrValidation, key)
	}
	return NewPair(source, target)
}

// Key is the persisted-store key, e.g. "USD_EUR".
func (p Pair) Key() string { return p.Source + "_" + p.Target }

func (p Pair) String() string { return p.Source + "/" + p.Target }

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
