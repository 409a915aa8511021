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

// TradingChecker classifies companies as publicly traded or not against
// the market-data provider. A miss is a valid classification, not an
// error: the provider may list a real public company under a different
// legal name, which is an accepted limitation.
//
// Every symbol-search call is recorded to the audit store.
type TradingChecker struct {
	market marketdata.Client
	calls  storage.CallRepository
	logger *zap.Logger
}

// NewTradingChecker creates a checker backed by the given market-data client.
func NewTradingChecker(market marketdata.Client, calls storage.CallRepository, logger *zap.Logger) *TradingChecker {
	return &TradingChecker{market: market, calls: calls, logger: logger}
}

// SplitCompanies splits a comma-separated list into trimmed, non-empty
// company names. "Oracle,Microsoft" and "Oracle, Microsoft" yield the
// same entries.
func SplitCompanies(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Check looks up each company in a comma-separated list and returns the
// aggregated trading-status report. The envelope is a success as long as
// aggregation completed, irrespective of individual lookup misses; only
// total provider unavailability is an error.
func (t *TradingChecker) Check(ctx context.Context, companyNames string) *model.Envelope {
	names := SplitCompanies(companyNames)
	if len(names) == 0 {
		return model.Errorf("company list must not be empty")
	}

	records, err := t.CheckList(ctx, names)
	if err != nil {
		return model.Errorf("unable to check trading status: %v", err)
	}

	public := 0
	for _, r := range records {
		if r.IsPublic {
			public++
		}
	}

	return model.Success(formatTradingReport(records)).
		WithMeta("detailed_results", records).
		WithMeta("public_count", public).
		WithMeta("private_count", len(records)-public)
}

// CheckList classifies each name sequentially. It returns an error only
// when every lookup that reached the provider failed — a single working
// lookup is proof the provider is up, and misses are classifications.
func (t *TradingChecker) CheckList(ctx context.Context, names []string) ([]model.TradingRecord, error) {
	records := make([]model.TradingRecord, 0, len(names))

	lookups := 0
	failures := 0
	var lastErr error

	for _, name := range names {
		if marketdata.KnownPrivate(name) {
			records = append(records, model.TradingRecord{
				Company: name,
				Status:  "Known private company",
			})
			continue
		}

		lookups++
		record, err := t.classify(ctx, name)
		if err != nil {
			failures++
			lastErr = err
			t.logger.Warn("trading-status lookup failed",
				zap.String("company", name),
				zap.Error(err),
			)
			records = append(records, model.TradingRecord{
				Company: name,
				Status:  fmt.Sprintf("Lookup failed: %v", err),
			})
			continue
		}
		records = append(records, *record)
	}

	if lookups > 0 && failures == lookups {
		return nil, fmt.Errorf("market data provider unavailable: %w", lastErr)
	}
	return records, nil
}

// classify resolves one company name to a listed instrument:
// known-symbol override first, then provider name search, then
// guessed ticker prefixes as a last resort.
func (t *TradingChecker) classify(ctx context.Context, name string) (*model.TradingRecord, error) {
	queries := []string{}
	if symbol, ok := marketdata.OverrideSymbol(name); ok {
		queries = append(queries, symbol)
	} else {
		queries = append(queries, name)
		queries = append(queries, marketdata.CandidateSymbols(name)...)
	}

	for _, q := range queries {
		start := time.Now()
		quote, err := t.market.SearchSymbol(ctx, q)
		recordMarketCall(ctx, t.calls, t.logger, "check_public_trading_status", "symbol_search", q, err, time.Since(start))
		if errors.Is(err, marketdata.ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &model.TradingRecord{
			Company:      name,
			IsPublic:     true,
			Symbol:       quote.Symbol,
			OfficialName: quote.Name,
			Exchange:     quote.Exchange,
			Status:       "Publicly traded",
		}, nil
	}

	return &model.TradingRecord{
		Company: name,
		Status:  "No public trading symbol found",
	}, nil
}

func formatTradingReport(records []model.TradingRecord) string {
	var public, private []model.TradingRecord
	for _, r := range records {
		if r.IsPublic {
			public = append(public, r)
		} else {
			private = append(private, r)
		}
	}

	var b strings.Builder
	b.WriteString("Trading Status Analysis:\n")

	if len(public) > 0 {
		b.WriteString("\nPUBLICLY TRADED COMPANIES:\n")
		for _, r := range public {
			fmt.Fprintf(&b, "- %s (%s) - %s on %s\n", r.Company, r.Symbol, r.OfficialName, r.Exchange)
		}
	}

	if len(private) > 0 {
		b.WriteString("\nNON-PUBLIC / PRIVATE COMPANIES:\n")
		for _, r := range private {
			fmt.Fprintf(&b, "- %s - %s\n", r.Company, r.Status)
		}
	}

	return b.String()
}
