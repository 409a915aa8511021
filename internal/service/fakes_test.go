package service

import (
	"context"
	"strings"
	"sync"

	"github.com/dcastano/partnerscope/internal/llm"
	"github.com/dcastano/partnerscope/internal/marketdata"
	"github.com/dcastano/partnerscope/internal/model"
)

// fakeLLM is a scripted llm.Client.
type fakeLLM struct {
	name   string
	result *llm.PartnerSearchResult
	err    error
	calls  int
}

func (f *fakeLLM) FindPartners(_ context.Context, _ string) (*llm.PartnerSearchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeLLM) ProviderName() string { return f.name }
func (f *fakeLLM) ModelName() string    { return f.name + "-model" }

// fakeMarket resolves symbols from a fixed quote table. Unknown queries
// return ErrNoMatch; set err to simulate provider unavailability.
type fakeMarket struct {
	quotes      map[string]marketdata.Quote // keyed by lowercased query
	metrics     map[string]model.FinancialMetrics
	err         error
	failQueries map[string]error // per-query failures, keyed by lowercased query
	lookups     int
}

func (f *fakeMarket) SearchSymbol(_ context.Context, query string) (*marketdata.Quote, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failQueries[strings.ToLower(query)]; ok {
		return nil, err
	}
	quote, ok := f.quotes[strings.ToLower(query)]
	if !ok {
		return nil, marketdata.ErrNoMatch
	}
	return &quote, nil
}

func (f *fakeMarket) Statistics(_ context.Context, symbol string) (*model.FinancialMetrics, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.metrics[symbol]
	if !ok {
		return nil, marketdata.ErrNoMatch
	}
	return &m, nil
}

// memCallRepo records provider calls in memory.
type memCallRepo struct {
	mu    sync.Mutex
	calls []model.ProviderCall
}

func (m *memCallRepo) Create(_ context.Context, call *model.ProviderCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	call.ID = int64(len(m.calls) + 1)
	m.calls = append(m.calls, *call)
	return nil
}

func (m *memCallRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.calls)), nil
}

func (m *memCallRepo) CountByTool(_ context.Context, tool string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.calls {
		if c.Tool == tool {
			n++
		}
	}
	return n, nil
}

func (m *memCallRepo) CountFailed(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.calls {
		if !c.Success {
			n++
		}
	}
	return n, nil
}

func (m *memCallRepo) Recent(_ context.Context, limit int) ([]model.ProviderCall, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.calls) {
		limit = len(m.calls)
	}
	out := make([]model.ProviderCall, limit)
	copy(out, m.calls[len(m.calls)-limit:])
	return out, nil
}

// usQuotes is the fixture table used by the trading-status tests.
func usQuotes() map[string]marketdata.Quote {
	return map[string]marketdata.Quote{
		"orcl": {Symbol: "ORCL", Name: "Oracle Corporation", Exchange: "NYSE", Country: "United States", Type: "Common Stock"},
		"msft": {Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", Country: "United States", Type: "Common Stock"},
		"tsla": {Symbol: "TSLA", Name: "Tesla, Inc.", Exchange: "NASDAQ", Country: "United States", Type: "Common Stock"},
	}
}
