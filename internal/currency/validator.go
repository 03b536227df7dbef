package currency

import (
	"fmt"
	"strings"

	"wiserate/internal/domain"
)

// ParseCode normalizes a raw currency code and checks it is supported.
func ParseCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !Supported(code) {
		return "", fmt.Errorf("%w: unsupported currency code %q", domain.ErrValidation, code)
	}
	return code, nil
}

// ParsePair builds a domain.Pair from raw user input, checking both the
// structural invariants and that each code is a supported currency.
func ParsePair(source, target string) (domain.Pair, error) {
	pair, err := domain.NewPair(source, target)
	if err != nil {
		return domain.Pair{}, err
	}
	if !Supported(pair.Source) {
		return domain.Pair{}, fmt.Errorf("%w: unsupported currency code %q", domain.ErrValidation, pair.Source)
	}
	if !Supported(pair.Target) {
		return domain.Pair{}, fmt.Errorf("%w: unsupported currency code %q", domain.ErrValidation, pair.Target)
	}
	return pair, nil
}
