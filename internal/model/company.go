package model

import "time"

// TradingRecord classifies one company from a trading-status check.
// Records are built fresh per request — nothing here is persisted.
type TradingRecord struct {
	Company      string `json:"company"`
	IsPublic     bool   `json:"is_public"`
	Symbol       string `json:"symbol,omitempty"`
	OfficialName string `json:"official_name,omitempty"`
	Exchange     string `json:"exchange,omitempty"`
	// Status is a human-readable classification note, e.g.
	// "Publicly traded" or "No public trading symbol found".
	Status string `json:"status"`
}

// FinancialMetrics holds the fundamentals summary for one ticker.
type FinancialMetrics struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name,omitempty"`
	MarketCap       float64 `json:"market_cap"`
	RevenueTTM      float64 `json:"revenue_ttm"`
	GrossProfitTTM  float64 `json:"gross_profit_ttm"`
	EBITDA          float64 `json:"ebitda"`
	NetIncomeTTM    float64 `json:"net_income_ttm"`
	GrossMargin     float64 `json:"gross_margin"`
	OperatingMargin float64 `json:"operating_margin"`
	ProfitMargin    float64 `json:"profit_margin"`
	FiscalYearEnd   string  `json:"fiscal_year_end,omitempty"`
}

// ProviderCall tracks each outbound call to an LLM or market-data
// provider for cost monitoring. This is an audit log, not a cache:
// results are never served from it.
type ProviderCall struct {
	ID         int64     `db:"id" json:"id"`
	Tool       string    `db:"tool" json:"tool"`
	Provider   string    `db:"provider" json:"provider"`
	Model      string    `db:"model" json:"model"`
	Query      string    `db:"query" json:"query"`
	Success    bool      `db:"success" json:"success"`
	DurationMs *int64    `db:"duration_ms" json:"duration_ms,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
