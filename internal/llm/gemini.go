package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements the Client interface using Gemini with the
// GoogleSearch grounding tool. The model searches the web itself and the
// response schema forces a JSON answer, so there is no prose to parse.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed partner finder.
func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) ProviderName() string { return "gemini" }
func (g *GeminiClient) ModelName() string    { return g.model }

// geminiAnswer mirrors the response schema below.
type geminiAnswer struct {
	Report    string   `json:"report"`
	Companies []string `json:"companies"`
}

func (g *GeminiClient) FindPartners(ctx context.Context, companyName string) (*PartnerSearchResult, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: buildPrompt(companyName)}}},
	}

	tools := []*genai.Tool{
		{GoogleSearch: &genai.GoogleSearch{}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   partnerSchema(),
		Tools:            tools,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response for %s", companyName)
	}

	var answer geminiAnswer
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		return nil, fmt.Errorf("parsing gemini JSON response: %w", err)
	}

	if answer.Report == "" {
		return nil, fmt.Errorf("gemini found no partner information for %s", companyName)
	}

	return &PartnerSearchResult{
		Report:    answer.Report,
		Companies: answer.Companies,
	}, nil
}

func partnerSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"report": {
				Type:        genai.TypeString,
				Description: "Prose summary of the business relationships found.",
			},
			"companies": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Partner, supplier, and contractor company names.",
			},
		},
		Required: []string{"report", "companies"},
	}
}
