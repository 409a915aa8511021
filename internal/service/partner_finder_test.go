package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/llm"
	"github.com/dcastano/partnerscope/internal/model"
)

func newFinder(calls *memCallRepo, clients ...llm.Client) *PartnerFinder {
	// High rate so tests never block on the limiter.
	return NewPartnerFinder(clients, 6000, calls, zap.NewNop())
}

func TestPartnerFinder_Success(t *testing.T) {
	calls := &memCallRepo{}
	finder := newFinder(calls, &fakeLLM{
		name: "gemini",
		result: &llm.PartnerSearchResult{
			Report:    "Oracle works with Accenture and Deloitte.",
			Companies: []string{"Accenture", "Deloitte"},
		},
	})

	env := finder.Find(context.Background(), "Oracle")
	require.True(t, env.OK())
	assert.Contains(t, env.Report, "Contracted companies for Oracle:")
	assert.Contains(t, env.Report, "Accenture")
	assert.Equal(t, []string{"Accenture", "Deloitte"}, env.Metadata["companies"])
	assert.Equal(t, "gemini", env.Metadata["provider"])

	// The call was audited.
	n, err := calls.CountByTool(context.Background(), "find_contracted_companies")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPartnerFinder_FallsBackToNextProvider(t *testing.T) {
	primary := &fakeLLM{name: "gemini", err: errors.New("quota exhausted")}
	fallback := &fakeLLM{
		name:   "anthropic",
		result: &llm.PartnerSearchResult{Report: "found some", Companies: []string{"IBM"}},
	}
	finder := newFinder(&memCallRepo{}, primary, fallback)

	env := finder.Find(context.Background(), "Oracle")
	require.True(t, env.OK())
	assert.Equal(t, "anthropic", env.Metadata["provider"])
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestPartnerFinder_AllProvidersFail(t *testing.T) {
	calls := &memCallRepo{}
	finder := newFinder(calls,
		&fakeLLM{name: "gemini", err: errors.New("quota exhausted")},
		&fakeLLM{name: "openai", err: errors.New("connection refused")},
	)

	env := finder.Find(context.Background(), "Oracle")
	assert.Equal(t, model.StatusError, env.Status)
	assert.Contains(t, env.ErrorMessage, "unable to search for contracted companies")
	assert.Contains(t, env.ErrorMessage, "connection refused")

	failed, err := calls.CountFailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), failed)
}

func TestPartnerFinder_EmptyInput(t *testing.T) {
	finder := newFinder(&memCallRepo{}, &fakeLLM{name: "gemini"})

	for _, input := range []string{"", "   "} {
		env := finder.Find(context.Background(), input)
		assert.Equal(t, model.StatusError, env.Status, "input %q", input)
	}
}

func TestPartnerFinder_NoProvidersConfigured(t *testing.T) {
	finder := newFinder(&memCallRepo{})

	env := finder.Find(context.Background(), "Oracle")
	assert.Equal(t, model.StatusError, env.Status)
	assert.Contains(t, env.ErrorMessage, "no LLM providers configured")
}

func TestPartnerFinder_NilCallRepo(t *testing.T) {
	// The audit store is optional; a nil repository must not panic.
	finder := NewPartnerFinder([]llm.Client{
		&fakeLLM{name: "gemini", result: &llm.PartnerSearchResult{Report: "ok"}},
	}, 6000, nil, zap.NewNop())

	env := finder.Find(context.Background(), "Oracle")
	assert.True(t, env.OK())
}
