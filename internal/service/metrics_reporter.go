package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/marketdata"
	"github.com/dcastano/partnerscope/internal/model"
	"github.com/dcastano/partnerscope/internal/storage"
)

// MetricsReporter fetches fundamentals for a ticker and formats them for
// display. Used standalone via the metrics tool and by the analyze
// pipeline for each public partner. Statistics calls are recorded to the
// audit store.
type MetricsReporter struct {
	market marketdata.Client
	calls  storage.CallRepository
	logger *zap.Logger
}

// NewMetricsReporter creates a reporter backed by the market-data client.
func NewMetricsReporter(market marketdata.Client, calls storage.CallRepository, logger *zap.Logger) *MetricsReporter {
	return &MetricsReporter{market: market, calls: calls, logger: logger}
}

// Report fetches fundamentals for a ticker and wraps them in an envelope.
func (m *MetricsReporter) Report(ctx context.Context, ticker string) *model.Envelope {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return model.Errorf("ticker must not be empty")
	}

	metrics, err := m.Fetch(ctx, ticker)
	if errors.Is(err, marketdata.ErrNoMatch) {
		return model.Errorf("no fundamentals found for %q", ticker)
	}
	if err != nil {
		return model.Errorf("unable to fetch financial metrics for %q: %v", ticker, err)
	}

	return model.Success(formatMetricsReport(metrics)).
		WithMeta("metrics", metrics)
}

// Fetch returns raw fundamentals for a ticker.
func (m *MetricsReporter) Fetch(ctx context.Context, ticker string) (*model.FinancialMetrics, error) {
	start := time.Now()
	metrics, err := m.market.Statistics(ctx, ticker)
	recordMarketCall(ctx, m.calls, m.logger, "get_company_financial_metrics", "statistics", ticker, err, time.Since(start))
	return metrics, err
}

func formatMetricsReport(fm *model.FinancialMetrics) string {
	name := fm.Name
	if name == "" {
		name = fm.Symbol
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Financial Metrics for %s (%s):\n\n", name, fm.Symbol)
	fmt.Fprintf(&b, "Market Cap: %s\n", formatMoney(fm.MarketCap))
	fmt.Fprintf(&b, "Revenue (TTM): %s\n", formatMoney(fm.RevenueTTM))
	fmt.Fprintf(&b, "Gross Profit (TTM): %s\n", formatMoney(fm.GrossProfitTTM))
	fmt.Fprintf(&b, "EBITDA: %s\n", formatMoney(fm.EBITDA))
	fmt.Fprintf(&b, "Net Income (TTM): %s\n", formatMoney(fm.NetIncomeTTM))
	b.WriteString("\nProfit Margins:\n")
	fmt.Fprintf(&b, "  Gross Margin: %s\n", formatPercent(fm.GrossMargin))
	fmt.Fprintf(&b, "  Operating Margin: %s\n", formatPercent(fm.OperatingMargin))
	fmt.Fprintf(&b, "  Net Margin: %s\n", formatPercent(fm.ProfitMargin))
	if fm.FiscalYearEnd != "" {
		fmt.Fprintf(&b, "\nFiscal Year Ends: %s\n", fm.FiscalYearEnd)
	}
	return b.String()
}

// formatMoney renders a dollar amount with a T/B/M suffix.
func formatMoney(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%s$%.2fT", neg, v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%s$%.2fB", neg, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s$%.2fM", neg, v/1e6)
	case v == 0:
		return "N/A"
	default:
		return fmt.Sprintf("%s$%.0f", neg, v)
	}
}

// formatPercent renders a 0..1 ratio as a percentage.
func formatPercent(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
