// Package marketdata provides the client for the quote/fundamentals API
// used to classify companies as publicly traded and to fetch financial
// metrics. The wire format follows the Twelve Data style: JSON responses
// with a status field, symbol search by free-text name, and a statistics
// endpoint for fundamentals.
package marketdata

import (
	"context"
	"errors"

	"github.com/dcastano/partnerscope/internal/model"
)

// ErrNoMatch is returned when the provider has no instrument for a name
// or symbol. This is a valid "not publicly traded" classification for the
// caller, not a provider failure. Check with errors.Is(err, ErrNoMatch).
var ErrNoMatch = errors.New("no matching instrument")

// Quote identifies one listed instrument returned by symbol search.
type Quote struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"instrument_name"`
	Exchange string `json:"exchange"`
	Country  string `json:"country"`
	Type     string `json:"instrument_type"`
}

// Client is the interface for market-data lookups. The HTTP
// implementation lives in this package; tests use fakes.
type Client interface {
	// SearchSymbol resolves a company name or ticker to a listed
	// instrument. Returns ErrNoMatch when nothing is listed under it.
	SearchSymbol(ctx context.Context, query string) (*Quote, error)

	// Statistics fetches fundamentals for a ticker symbol.
	Statistics(ctx context.Context, symbol string) (*model.FinancialMetrics, error)
}
