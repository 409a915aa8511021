// Package llm provides a provider-agnostic interface for using LLMs with
// web-search capability to find a company's business partners. Each
// provider searches the web and returns a structured answer: a prose
// report plus the extracted list of partner company names. Asking the
// model for structured output up front avoids parsing free text later.
package llm

import (
	"context"
	"fmt"
)

// PartnerSearchResult is the structured answer from a partner search.
type PartnerSearchResult struct {
	Report    string   // Free-text summary of the business relationships found
	Companies []string // Partner/supplier/contractor company names extracted by the model
}

// Client is the interface for LLM providers that can search the web for
// business relationships. Gemini, Anthropic, and OpenAI all implement it,
// so the finder can fall back from one to the next.
type Client interface {
	FindPartners(ctx context.Context, companyName string) (*PartnerSearchResult, error)
	ProviderName() string
	ModelName() string
}

// buildPrompt creates the partner-search prompt shared by all providers.
func buildPrompt(companyName string) string {
	return fmt.Sprintf(`Find the major contracted companies, business partners, suppliers, and vendors that work with %s.

Search the web and focus on significant business relationships and partnerships. Include companies that provide services or products to %s or have major contracts with them.

Report your findings as:
- A concise prose summary of the relationships, naming each company clearly.
- The list of partner company names, one entry per company, using each company's common name (e.g. "Microsoft", not "Microsoft Corporation's Azure division").

Only include companies you actually found evidence for. If you find nothing, say so and return an empty list.`, companyName, companyName)
}
