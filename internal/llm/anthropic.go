package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// AnthropicClient implements the Client interface using Claude with native
// web search. Claude's built-in web_search tool lets it search the web
// autonomously; a custom submit tool gives us structured results instead
// of free-form text.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a Claude-backed partner finder.
func NewAnthropicClient(apiKey string, model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicClient{
		client: &client,
		model:  model,
	}
}

func (a *AnthropicClient) ProviderName() string { return "anthropic" }
func (a *AnthropicClient) ModelName() string    { return a.model }

// submitPartnersInput is the schema for the custom tool Claude calls to
// return its answer.
type submitPartnersInput struct {
	Report    string   `json:"report"`
	Companies []string `json:"companies"`
}

func (a *AnthropicClient) FindPartners(ctx context.Context, companyName string) (*PartnerSearchResult, error) {
	prompt := buildPrompt(companyName)

	submitTool := anthropic.ToolParam{
		Name:        "submit_partners",
		Description: param.NewOpt("Submit the business partners you found. Call this tool once with your complete findings."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: map[string]interface{}{
				"report": map[string]interface{}{
					"type":        "string",
					"description": "Prose summary of the business relationships found, naming each company.",
				},
				"companies": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Partner, supplier, and contractor company names, common names only.",
				},
			},
		},
	}

	// Two tools: web_search (built-in) + submit_partners (custom).
	// Claude searches the web, gathers relationships, then submits.
	tools := []anthropic.ToolUnionParam{
		{OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{}},
		{OfTool: &submitTool},
	}

	// Agentic loop: Claude may need multiple turns (search, read results,
	// search again, submit). Keep sending tool results back until it calls
	// submit_partners or gives up.
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	for i := 0; i < 5; i++ { // Max 5 turns to prevent runaway
		message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: 2048,
			Messages:  messages,
			Tools:     tools,
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic API call: %w", err)
		}

		for _, block := range message.Content {
			toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok {
				continue
			}

			if toolUse.Name == "submit_partners" {
				inputBytes, err := json.Marshal(toolUse.Input)
				if err != nil {
					return nil, fmt.Errorf("marshaling tool input: %w", err)
				}

				var input submitPartnersInput
				if err := json.Unmarshal(inputBytes, &input); err != nil {
					return nil, fmt.Errorf("parsing tool input: %w", err)
				}

				if input.Report == "" {
					return nil, fmt.Errorf("claude found no partner information for %s", companyName)
				}

				return &PartnerSearchResult{
					Report:    input.Report,
					Companies: input.Companies,
				}, nil
			}
		}

		// Claude hasn't submitted yet — it might still be searching.
		if message.StopReason == "end_turn" {
			return nil, fmt.Errorf("claude ended without submitting partners for %s", companyName)
		}

		// Web search tool results are handled automatically by the API;
		// only custom tool calls need results from us.
		messages = append(messages, message.ToParam())

		toolResults := []anthropic.ContentBlockParamUnion{}
		for _, block := range message.Content {
			toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok || toolUse.Name == "web_search" {
				continue
			}
			if toolUse.Name != "submit_partners" {
				toolResults = append(toolResults,
					anthropic.NewToolResultBlock(toolUse.ID, "Received, please continue searching.", false))
			}
		}
		if len(toolResults) > 0 {
			messages = append(messages, anthropic.NewUserMessage(toolResults...))
		}
	}

	return nil, fmt.Errorf("exceeded max turns without partner results for %s", companyName)
}
