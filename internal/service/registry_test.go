package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/llm"
	"github.com/dcastano/partnerscope/internal/model"
)

func newRegistry() *Registry {
	logger := zap.NewNop()
	market := &fakeMarket{quotes: usQuotes()}
	finder := newFinder(&memCallRepo{}, &fakeLLM{
		name:   "gemini",
		result: &llm.PartnerSearchResult{Report: "found", Companies: []string{"Microsoft"}},
	})
	checker := NewTradingChecker(market, nil, logger)
	metrics := NewMetricsReporter(market, nil, logger)
	analyzer := NewAnalyzer(finder, checker, metrics, logger)
	return NewRegistry(finder, checker, metrics, analyzer)
}

func TestRegistry_ListsAllTools(t *testing.T) {
	tools := newRegistry().List()
	require.Len(t, tools, 6)

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.Params)
	}
	assert.Equal(t, []string{
		"find_contracted_companies",
		"check_public_trading_status",
		"get_company_financial_metrics",
		"analyze_company",
		"get_weather",
		"get_current_time",
	}, names)
}

func TestRegistry_Dispatch(t *testing.T) {
	registry := newRegistry()

	env, err := registry.Dispatch(context.Background(), "check_public_trading_status",
		map[string]string{"company_names": "Oracle"})
	require.NoError(t, err)
	assert.True(t, env.OK())
}

func TestRegistry_DispatchUnknownTool(t *testing.T) {
	_, err := newRegistry().Dispatch(context.Background(), "launch_missiles", nil)
	assert.ErrorContains(t, err, "unknown tool")
}

func TestRegistry_DispatchMissingArgs(t *testing.T) {
	// A tool called without its required argument reports an error
	// envelope, never an error or a panic.
	registry := newRegistry()

	env, err := registry.Dispatch(context.Background(), "find_contracted_companies", nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, env.Status)
}
