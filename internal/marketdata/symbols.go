package marketdata

import "strings"

// symbolOverrides maps well-known company names (lowercased) directly to
// their primary US ticker. Name search on the provider is fuzzy; for
// these companies we already know the answer and skip the ambiguity.
var symbolOverrides = map[string]string{
	"oracle":     "ORCL",
	"microsoft":  "MSFT",
	"apple":      "AAPL",
	"google":     "GOOGL",
	"alphabet":   "GOOGL",
	"amazon":     "AMZN",
	"meta":       "META",
	"facebook":   "META",
	"nvidia":     "NVDA",
	"tesla":      "TSLA",
	"salesforce": "CRM",
	"servicenow": "NOW",
	"workday":    "WDAY",
	"adobe":      "ADBE",
	"intel":      "INTC",
	"ibm":        "IBM",
	"sap":        "SAP",
	"accenture":  "ACN",
}

// knownPrivate lists large firms that are not publicly traded. Looking
// these up would only produce false positives from similarly named
// listings.
var knownPrivate = map[string]struct{}{
	"pwc":           {},
	"kpmg":          {},
	"ey":            {},
	"ernst & young": {},
	"deloitte":      {},
}

// OverrideSymbol returns the known ticker for a company name, if any.
func OverrideSymbol(name string) (string, bool) {
	symbol, ok := symbolOverrides[strings.ToLower(strings.TrimSpace(name))]
	return symbol, ok
}

// KnownPrivate reports whether the company is known not to be listed.
func KnownPrivate(name string) bool {
	_, ok := knownPrivate[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// CandidateSymbols guesses ticker symbols from a company name, used as a
// last resort when name search finds nothing. Duplicates are dropped.
func CandidateSymbols(name string) []string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	squashed := strings.ReplaceAll(upper, " ", "")

	guesses := []string{}
	seen := map[string]struct{}{}
	for _, g := range []string{prefix(upper, 4), prefix(upper, 3), prefix(squashed, 4)} {
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		guesses = append(guesses, g)
	}
	return guesses
}

// prefix returns the first n runes of s. Slicing runes, not bytes, keeps
// multi-byte characters in non-ASCII company names intact.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n])
}
