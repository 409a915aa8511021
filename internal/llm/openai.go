package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements the Client interface using OpenAI's API as a
// fallback. Uses function calling to get structured partner results.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed partner finder.
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAIClient) ProviderName() string { return "openai" }
func (o *OpenAIClient) ModelName() string    { return o.model }

func (o *OpenAIClient) FindPartners(ctx context.Context, companyName string) (*PartnerSearchResult, error) {
	prompt := buildPrompt(companyName)

	tools := []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "submit_partners",
				Description: "Submit the business partners found. Call this once with the complete findings.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"report": map[string]interface{}{
							"type":        "string",
							"description": "Prose summary of the business relationships found.",
						},
						"companies": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Partner, supplier, and contractor company names.",
						},
					},
					"required": []string{"report", "companies"},
				},
			},
		},
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: `You are a business-relationship researcher. Identify the contractors, suppliers, and partners of the company the user names.
Return your findings via the submit_partners function. Name only companies you have evidence for.`,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}

	for i := 0; i < 5; i++ {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    o.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return nil, fmt.Errorf("openai API call: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("openai returned no choices")
		}

		choice := resp.Choices[0]

		if len(choice.Message.ToolCalls) > 0 {
			messages = append(messages, choice.Message)

			for _, toolCall := range choice.Message.ToolCalls {
				if toolCall.Function.Name == "submit_partners" {
					var result PartnerSearchResult
					var input struct {
						Report    string   `json:"report"`
						Companies []string `json:"companies"`
					}
					if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &input); err != nil {
						return nil, fmt.Errorf("parsing tool arguments: %w", err)
					}

					if input.Report == "" {
						return nil, fmt.Errorf("openai found no partner information for %s", companyName)
					}

					result.Report = input.Report
					result.Companies = input.Companies
					return &result, nil
				}

				// Any other tool call gets a generic nudge back.
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    "Received. Please continue and call submit_partners with your findings.",
					ToolCallID: toolCall.ID,
				})
			}
			continue
		}

		if choice.FinishReason == "stop" {
			return nil, fmt.Errorf("openai ended without submitting partners for %s", companyName)
		}
	}

	return nil, fmt.Errorf("exceeded max turns without partner results for %s", companyName)
}
