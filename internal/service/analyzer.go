package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/model"
)

// Analyzer chains the tool operations into the combined pipeline the
// frontend charts: partner search, then trading status for each partner
// found, then financial metrics for each public partner.
//
// Partner search failure fails the pipeline; everything downstream
// degrades gracefully — a dead market-data provider still returns the
// partner list.
type Analyzer struct {
	finder  *PartnerFinder
	checker *TradingChecker
	metrics *MetricsReporter
	logger  *zap.Logger
}

// NewAnalyzer wires the pipeline from the individual operations.
func NewAnalyzer(finder *PartnerFinder, checker *TradingChecker, metrics *MetricsReporter, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		finder:  finder,
		checker: checker,
		metrics: metrics,
		logger:  logger,
	}
}

// Analyze runs the full pipeline for one company.
func (a *Analyzer) Analyze(ctx context.Context, companyName string) *model.Envelope {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return model.Errorf("company name must not be empty")
	}

	search, client, err := a.finder.Search(ctx, companyName)
	if err != nil {
		return model.Errorf("unable to search for contracted companies for %q: %v", companyName, err)
	}

	env := model.Success(search.Report).
		WithMeta("company_searched", companyName).
		WithMeta("partners", search.Companies).
		WithMeta("provider", client.ProviderName()).
		WithMeta("total_companies_found", len(search.Companies))

	if len(search.Companies) == 0 {
		return env.WithMeta("public_count", 0)
	}

	records, err := a.checker.CheckList(ctx, search.Companies)
	if err != nil {
		a.logger.Warn("trading-status check failed during analyze",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return env.WithMeta("trading_status_error", err.Error())
	}

	financials := []*model.FinancialMetrics{}
	publicCount := 0
	for _, record := range records {
		if !record.IsPublic {
			continue
		}
		publicCount++

		fm, err := a.metrics.Fetch(ctx, record.Symbol)
		if err != nil {
			a.logger.Warn("fetching metrics for partner",
				zap.String("symbol", record.Symbol),
				zap.Error(err),
			)
			continue
		}
		financials = append(financials, fm)
	}

	return env.
		WithMeta("trading_status_details", records).
		WithMeta("public_count", publicCount).
		WithMeta("financial_data", financials)
}
