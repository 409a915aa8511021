package service

import (
	"context"
	"fmt"

	"github.com/dcastano/partnerscope/internal/model"
)

// Param describes one input argument of a tool.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool is one named operation the agent shell can dispatch to. Arguments
// arrive as a flat string map; each tool validates its own inputs and
// always returns a Result Envelope, never an error.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
	Run         func(ctx context.Context, args map[string]string) *model.Envelope `json:"-"`
}

// Registry holds the tools in a stable order for listing and dispatch.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers the four real operations plus the legacy stubs.
func NewRegistry(finder *PartnerFinder, checker *TradingChecker, metrics *MetricsReporter, analyzer *Analyzer) *Registry {
	r := &Registry{tools: make(map[string]Tool)}

	r.add(Tool{
		Name:        "find_contracted_companies",
		Description: "Finds contracted companies, partners, and suppliers for a given company using LLM web search.",
		Params: []Param{
			{Name: "company_name", Type: "string", Description: "Company to search for, e.g. \"Oracle\".", Required: true},
		},
		Run: func(ctx context.Context, args map[string]string) *model.Envelope {
			return finder.Find(ctx, args["company_name"])
		},
	})

	r.add(Tool{
		Name:        "check_public_trading_status",
		Description: "Checks whether companies are publicly traded, with ticker and exchange for listed ones.",
		Params: []Param{
			{Name: "company_names", Type: "string", Description: "Comma-separated company names.", Required: true},
		},
		Run: func(ctx context.Context, args map[string]string) *model.Envelope {
			return checker.Check(ctx, args["company_names"])
		},
	})

	r.add(Tool{
		Name:        "get_company_financial_metrics",
		Description: "Fetches financial metrics (market cap, revenue, margins) for a ticker symbol.",
		Params: []Param{
			{Name: "ticker", Type: "string", Description: "Ticker symbol, e.g. \"MSFT\".", Required: true},
		},
		Run: func(ctx context.Context, args map[string]string) *model.Envelope {
			return metrics.Report(ctx, args["ticker"])
		},
	})

	r.add(Tool{
		Name:        "analyze_company",
		Description: "Full pipeline: finds partners, checks which are publicly traded, and fetches their financials.",
		Params: []Param{
			{Name: "company_name", Type: "string", Description: "Company to analyze.", Required: true},
		},
		Run: func(ctx context.Context, args map[string]string) *model.Envelope {
			return analyzer.Analyze(ctx, args["company_name"])
		},
	})

	r.add(Tool{
		Name:        "get_weather",
		Description: "Retrieves the current weather report for a city (stub).",
		Params: []Param{
			{Name: "city", Type: "string", Description: "City name.", Required: true},
		},
		Run: func(_ context.Context, args map[string]string) *model.Envelope {
			return Weather(args["city"])
		},
	})

	r.add(Tool{
		Name:        "get_current_time",
		Description: "Returns the current time in a city (stub).",
		Params: []Param{
			{Name: "city", Type: "string", Description: "City name.", Required: true},
		},
		Run: func(_ context.Context, args map[string]string) *model.Envelope {
			return CurrentTime(args["city"])
		},
	})

	return r
}

func (r *Registry) add(t Tool) {
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// List returns all tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch runs a tool by name. Unknown names are a dispatch error, not
// an error envelope — the caller picked a tool that does not exist.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]string) (*model.Envelope, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	if args == nil {
		args = map[string]string{}
	}
	return tool.Run(ctx, args), nil
}
