package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "test-key", 6000, zap.NewNop())
}

func TestSearchSymbol_Found(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/symbol_search", r.URL.Path)
		assert.Equal(t, "Microsoft", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"data": [
				{"symbol": "MSFT", "instrument_name": "Microsoft Corporation", "exchange": "NASDAQ", "country": "United States", "instrument_type": "Common Stock"}
			]
		}`))
	})

	quote, err := client.SearchSymbol(context.Background(), "Microsoft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", quote.Symbol)
	assert.Equal(t, "Microsoft Corporation", quote.Name)
	assert.Equal(t, "NASDAQ", quote.Exchange)
}

func TestSearchSymbol_PrefersCommonStock(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "ok",
			"data": [
				{"symbol": "MSF", "instrument_name": "Microsoft Corp CDR", "exchange": "FSX", "country": "Germany", "instrument_type": "Depositary Receipt"},
				{"symbol": "MSFT", "instrument_name": "Microsoft Corporation", "exchange": "NASDAQ", "country": "United States", "instrument_type": "Common Stock"}
			]
		}`))
	})

	quote, err := client.SearchSymbol(context.Background(), "Microsoft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", quote.Symbol)
}

func TestSearchSymbol_NoMatch(t *testing.T) {
	cases := map[string]string{
		"empty data":     `{"status": "ok", "data": []}`,
		"not found code": `{"status": "error", "code": 404, "message": "symbol not found"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := client.SearchSymbol(context.Background(), "NotARealCompanyXYZ")
			assert.True(t, errors.Is(err, ErrNoMatch))
		})
	}
}

func TestSearchSymbol_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "code": 401, "message": "invalid api key"}`))
	})

	_, err := client.SearchSymbol(context.Background(), "Microsoft")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoMatch))
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSearchSymbol_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.SearchSymbol(context.Background(), "Microsoft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestStatistics_Found(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statistics", r.URL.Path)
		assert.Equal(t, "MSFT", r.URL.Query().Get("symbol"))

		w.Write([]byte(`{
			"meta": {"symbol": "MSFT", "name": "Microsoft Corporation"},
			"statistics": {
				"valuations_metrics": {"market_capitalization": 3100000000000},
				"financials": {
					"fiscal_year_ends": "2025-06-30",
					"gross_margin": 0.697,
					"operating_margin": 0.446,
					"profit_margin": 0.359,
					"income_statement": {
						"revenue_ttm": 245000000000,
						"gross_profit_ttm": 171000000000,
						"ebitda": 136000000000,
						"net_income_to_common_ttm": 88000000000
					}
				}
			}
		}`))
	})

	metrics, err := client.Statistics(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft Corporation", metrics.Name)
	assert.Equal(t, 3.1e12, metrics.MarketCap)
	assert.Equal(t, 2.45e11, metrics.RevenueTTM)
	assert.Equal(t, 0.446, metrics.OperatingMargin)
	assert.Equal(t, "2025-06-30", metrics.FiscalYearEnd)
}

func TestStatistics_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "code": 404, "message": "symbol not found"}`))
	})

	_, err := client.Statistics(context.Background(), "ZZZZ")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "data": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchSymbol(ctx, "Microsoft")
	require.Error(t, err)
}
