package marketdata

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestOverrideSymbol(t *testing.T) {
	symbol, ok := OverrideSymbol("Microsoft")
	assert.True(t, ok)
	assert.Equal(t, "MSFT", symbol)

	// Lookup is case- and whitespace-insensitive.
	symbol, ok = OverrideSymbol("  ORACLE ")
	assert.True(t, ok)
	assert.Equal(t, "ORCL", symbol)

	_, ok = OverrideSymbol("NotARealCompanyXYZ")
	assert.False(t, ok)
}

func TestKnownPrivate(t *testing.T) {
	assert.True(t, KnownPrivate("PwC"))
	assert.True(t, KnownPrivate("ernst & young"))
	assert.False(t, KnownPrivate("Microsoft"))
}

func TestCandidateSymbols(t *testing.T) {
	assert.Equal(t, []string{"GENE", "GEN"}, CandidateSymbols("General Electric"))
	assert.Equal(t, []string{"WORK", "WOR"}, CandidateSymbols("Workday"))

	// Short names don't produce duplicate guesses.
	assert.Equal(t, []string{"SAP"}, CandidateSymbols("SAP"))
	assert.Equal(t, []string{"AB"}, CandidateSymbols("ab"))
	assert.Empty(t, CandidateSymbols("  "))
}

func TestCandidateSymbols_NonASCII(t *testing.T) {
	// Guesses are cut by rune, so accented names never yield a query
	// with a multi-byte character split in half.
	guesses := CandidateSymbols("Télébec")
	assert.Equal(t, []string{"TÉLÉ", "TÉL"}, guesses)
	for _, g := range guesses {
		assert.True(t, utf8.ValidString(g), "guess %q is not valid UTF-8", g)
	}
}
