package currency

import (
	"testing"

	"wiserate/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestParsePair_Success(t *testing.T) {
	pair, err := ParsePair("usd", "eur")
	require.NoError(t, err)
	require.Equal(t, domain.Pair{Source: "USD", Target: "EUR"}, pair)
}

func TestParsePair_UnsupportedCurrency(t *testing.T) {
	_, err := ParsePair("USD", "XXX")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "XXX")

	_, err = ParsePair("ZZZ", "EUR")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "ZZZ")
}

func TestParsePair_StructuralErrorsComeFirst(t *testing.T) {
	_, err := ParsePair("USD", "USD")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseCode(t *testing.T) {
	code, err := ParseCode(" gbp ")
	require.NoError(t, err)
	require.Equal(t, "GBP", code)

	_, err = ParseCode("nope")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSupportedAndName(t *testing.T) {
	require.True(t, Supported("USD"))
	require.False(t, Supported("usd")) // Supported expects normalized codes
	require.Equal(t, "US Dollar", Name("USD"))
	require.Empty(t, Name("ZZZ"))
}

func TestCodes_SortedAndComplete(t *testing.T) {
	codes := Codes()
	require.NotEmpty(t, codes)
	require.IsIncreasing(t, codes)
	require.Contains(t, codes, "USD")
	require.Contains(t, codes, "EUR")
	require.Contains(t, codes, "JPY")
}
