package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dcastano/partnerscope/internal/model"
)

// HTTPClient talks to the market-data API over HTTP. Calls are rate
// limited client-side because the provider's free tier enforces a
// per-minute credit budget.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPClient creates a client for the given API base URL.
func NewHTTPClient(baseURL string, apiKey string, ratePerMinute int, logger *zap.Logger) *HTTPClient {
	if ratePerMinute <= 0 {
		ratePerMinute = 55
	}
	rps := rate.Every(time.Minute / time.Duration(ratePerMinute))

	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rps, 1),
		logger:  logger,
	}
}

// symbolSearchResponse is the wire shape of /symbol_search.
type symbolSearchResponse struct {
	Status  string  `json:"status"`
	Code    int     `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
	Data    []Quote `json:"data"`
}

func (c *HTTPClient) SearchSymbol(ctx context.Context, query string) (*Quote, error) {
	var resp symbolSearchResponse
	params := url.Values{"symbol": {query}, "outputsize": {"5"}}
	if err := c.get(ctx, "/symbol_search", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status == "error" {
		if resp.Code == http.StatusNotFound {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("symbol search for %q: %s", query, resp.Message)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoMatch
	}

	// The search is fuzzy and may return depositary receipts or foreign
	// listings first. Prefer a common-stock listing when one exists.
	for i := range resp.Data {
		if resp.Data[i].Type == "Common Stock" {
			return &resp.Data[i], nil
		}
	}
	return &resp.Data[0], nil
}

// statisticsResponse is the wire shape of /statistics.
type statisticsResponse struct {
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"meta"`
	Statistics struct {
		ValuationsMetrics struct {
			MarketCapitalization float64 `json:"market_capitalization"`
		} `json:"valuations_metrics"`
		Financials struct {
			FiscalYearEnds  string  `json:"fiscal_year_ends"`
			GrossMargin     float64 `json:"gross_margin"`
			OperatingMargin float64 `json:"operating_margin"`
			ProfitMargin    float64 `json:"profit_margin"`
			IncomeStatement struct {
				RevenueTTM           float64 `json:"revenue_ttm"`
				GrossProfitTTM       float64 `json:"gross_profit_ttm"`
				EBITDA               float64 `json:"ebitda"`
				NetIncomeToCommonTTM float64 `json:"net_income_to_common_ttm"`
			} `json:"income_statement"`
		} `json:"financials"`
	} `json:"statistics"`
}

func (c *HTTPClient) Statistics(ctx context.Context, symbol string) (*model.FinancialMetrics, error) {
	var resp statisticsResponse
	params := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/statistics", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status == "error" {
		if resp.Code == http.StatusNotFound {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("statistics for %q: %s", symbol, resp.Message)
	}

	fin := resp.Statistics.Financials
	return &model.FinancialMetrics{
		Symbol:          symbol,
		Name:            resp.Meta.Name,
		MarketCap:       resp.Statistics.ValuationsMetrics.MarketCapitalization,
		RevenueTTM:      fin.IncomeStatement.RevenueTTM,
		GrossProfitTTM:  fin.IncomeStatement.GrossProfitTTM,
		EBITDA:          fin.IncomeStatement.EBITDA,
		NetIncomeTTM:    fin.IncomeStatement.NetIncomeToCommonTTM,
		GrossMargin:     fin.GrossMargin,
		OperatingMargin: fin.OperatingMargin,
		ProfitMargin:    fin.ProfitMargin,
		FiscalYearEnd:   fin.FiscalYearEnds,
	}, nil
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	// Blocks until a token is available or the context is cancelled.
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "partnerscope/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("market-data request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("market-data call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market-data API returned HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
