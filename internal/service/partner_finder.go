// Package service contains the tool operations exposed to the agent
// shell and the HTTP API: partner search, trading-status checks,
// financial metrics, the combined analyze pipeline, and the legacy
// stub tools.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dcastano/partnerscope/internal/llm"
	"github.com/dcastano/partnerscope/internal/model"
	"github.com/dcastano/partnerscope/internal/storage"
)

// PartnerFinder answers "who does company X do business with?" by asking
// an LLM provider with web-search capability. Providers are tried in
// configured order — first success wins, failures fall through.
//
// Rate limited to keep API costs bounded, and every provider call is
// recorded to the audit store.
type PartnerFinder struct {
	clients []llm.Client
	limiter *rate.Limiter
	calls   storage.CallRepository
	logger  *zap.Logger
}

// NewPartnerFinder creates a finder with an ordered list of LLM clients.
func NewPartnerFinder(clients []llm.Client, ratePerMinute int, calls storage.CallRepository, logger *zap.Logger) *PartnerFinder {
	if ratePerMinute <= 0 {
		ratePerMinute = 10
	}
	rps := rate.Every(time.Minute / time.Duration(ratePerMinute))

	return &PartnerFinder{
		clients: clients,
		limiter: rate.NewLimiter(rps, 1),
		calls:   calls,
		logger:  logger,
	}
}

// Find runs a partner search and wraps the outcome in a Result Envelope.
// Provider failure yields an error envelope with a diagnostic message;
// there are no retries and no partial results.
func (f *PartnerFinder) Find(ctx context.Context, companyName string) *model.Envelope {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return model.Errorf("company name must not be empty")
	}

	result, client, err := f.Search(ctx, companyName)
	if err != nil {
		return model.Errorf("unable to search for contracted companies for %q: %v", companyName, err)
	}

	report := fmt.Sprintf("Contracted companies for %s:\n%s", companyName, result.Report)
	return model.Success(report).
		WithMeta("company_searched", companyName).
		WithMeta("companies", result.Companies).
		WithMeta("provider", client.ProviderName()).
		WithMeta("model", client.ModelName())
}

// Search runs the provider fallback chain and returns the raw structured
// result plus the client that produced it. The analyze pipeline uses this
// directly to get the partner list without unwrapping an envelope.
func (f *PartnerFinder) Search(ctx context.Context, companyName string) (*llm.PartnerSearchResult, llm.Client, error) {
	if len(f.clients) == 0 {
		return nil, nil, fmt.Errorf("no LLM providers configured")
	}

	var lastErr error
	for i, client := range f.clients {
		// Blocks until a token is available or the context is cancelled.
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limit wait: %w", err)
		}

		start := time.Now()
		result, err := client.FindPartners(ctx, companyName)
		f.record(ctx, client, companyName, err, time.Since(start))

		if err == nil {
			return result, client, nil
		}

		lastErr = err
		if i < len(f.clients)-1 {
			f.logger.Warn("LLM provider failed, trying next",
				zap.String("company", companyName),
				zap.String("provider", client.ProviderName()),
				zap.Error(err),
			)
		}
	}

	return nil, nil, fmt.Errorf("all LLM providers failed: %w", lastErr)
}

func (f *PartnerFinder) record(ctx context.Context, client llm.Client, query string, callErr error, duration time.Duration) {
	if f.calls == nil {
		return
	}

	ms := duration.Milliseconds()
	call := &model.ProviderCall{
		Tool:       "find_contracted_companies",
		Provider:   client.ProviderName(),
		Model:      client.ModelName(),
		Query:      query,
		Success:    callErr == nil,
		DurationMs: &ms,
	}
	if err := f.calls.Create(ctx, call); err != nil {
		f.logger.Error("recording provider call", zap.Error(err))
	}
}
