// Package app wires configuration into the concrete services. Both the
// HTTP server and the CLI build their dependency graph here.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/config"
	"github.com/dcastano/partnerscope/internal/llm"
	"github.com/dcastano/partnerscope/internal/marketdata"
	"github.com/dcastano/partnerscope/internal/server"
	"github.com/dcastano/partnerscope/internal/service"
	"github.com/dcastano/partnerscope/internal/storage"
)

// App holds the wired dependency graph.
type App struct {
	Deps server.Deps
	DB   *sqlx.DB
}

// Close releases held resources.
func (a *App) Close() error {
	return a.DB.Close()
}

// Build constructs services from config: audit store, LLM clients in the
// configured fallback order, market-data client, and the operations on
// top of them.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := storage.NewDatabase(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	calls := storage.NewCallRepository(db)

	clients, err := buildLLMClients(ctx, cfg.LLM)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(clients) == 0 {
		logger.Warn("no LLM providers configured, partner search will fail")
	}

	market := marketdata.NewHTTPClient(
		cfg.MarketData.BaseURL,
		cfg.MarketData.APIKey,
		cfg.MarketData.RatePerMinute,
		logger,
	)

	finder := service.NewPartnerFinder(clients, cfg.LLM.RatePerMinute, calls, logger)
	checker := service.NewTradingChecker(market, calls, logger)
	metrics := service.NewMetricsReporter(market, calls, logger)
	analyzer := service.NewAnalyzer(finder, checker, metrics, logger)
	registry := service.NewRegistry(finder, checker, metrics, analyzer)

	return &App{
		Deps: server.Deps{
			Finder:   finder,
			Checker:  checker,
			Metrics:  metrics,
			Analyzer: analyzer,
			Registry: registry,
			Calls:    calls,
		},
		DB: db,
	}, nil
}

// buildLLMClients instantiates clients for each configured provider, in
// provider_order. Providers without an API key are skipped silently so a
// single-key deployment works without config surgery.
func buildLLMClients(ctx context.Context, cfg config.LLMConfig) ([]llm.Client, error) {
	var clients []llm.Client
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "gemini":
			if cfg.Gemini.APIKey == "" {
				continue
			}
			client, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				return nil, fmt.Errorf("building gemini client: %w", err)
			}
			clients = append(clients, client)
		case "anthropic":
			if cfg.Anthropic.APIKey == "" {
				continue
			}
			clients = append(clients, llm.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model))
		case "openai":
			if cfg.OpenAI.APIKey == "" {
				continue
			}
			clients = append(clients, llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
		default:
			return nil, fmt.Errorf("unknown LLM provider %q in provider_order", name)
		}
	}
	return clients, nil
}
