package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/marketdata"
	"github.com/dcastano/partnerscope/internal/model"
	"github.com/dcastano/partnerscope/internal/storage"
)

// recordMarketCall audits one outbound market-data call. A no-match is a
// provider answer, not a failure, so it counts as a success.
func recordMarketCall(ctx context.Context, calls storage.CallRepository, logger *zap.Logger, tool, endpoint, query string, callErr error, duration time.Duration) {
	if calls == nil {
		return
	}

	ms := duration.Milliseconds()
	call := &model.ProviderCall{
		Tool:       tool,
		Provider:   "marketdata",
		Model:      endpoint,
		Query:      query,
		Success:    callErr == nil || errors.Is(callErr, marketdata.ErrNoMatch),
		DurationMs: &ms,
	}
	if err := calls.Create(ctx, call); err != nil {
		logger.Error("recording provider call", zap.Error(err))
	}
}
