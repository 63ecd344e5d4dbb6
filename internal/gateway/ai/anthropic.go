package ai

import (
	"context"
	"fmt"
	"net/http"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
	anthropicDefaultModel   = "claude-3-5-haiku-latest"

	// The messages API requires max_tokens; this caps unset requests.
	anthropicDefaultMaxTokens = 1024
)

// Anthropic drives the Anthropic messages API. Text only.
type Anthropic struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) baseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	return anthropicDefaultBaseURL
}

func (p *Anthropic) GenerateText(ctx context.Context, req TextRequest) (TextResult, error) {
	model := req.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	payload := map[string]any{
		"model":      model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.Temperature >= 0 {
		payload["temperature"] = req.Temperature
	}

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	headers := map[string]string{
		"x-api-key":         p.APIKey,
		"anthropic-version": anthropicVersion,
	}
	if err := httpJSON(ctx, defaultHTTPClient(p.Client), p.baseURL()+"/v1/messages", headers, payload, &out); err != nil {
		return TextResult{}, err
	}
	if len(out.Content) == 0 {
		return TextResult{}, fmt.Errorf("ai: anthropic returned no content")
	}

	return TextResult{
		Response: out.Content[0].Text,
		Usage: &Usage{
			PromptTokens:     out.Usage.InputTokens,
			CompletionTokens: out.Usage.OutputTokens,
			TotalTokens:      out.Usage.InputTokens + out.Usage.OutputTokens,
		},
		Model: model,
	}, nil
}

func (p *Anthropic) GenerateImage(context.Context, ImageRequest) (ImageResult, error) {
	return ImageResult{}, fmt.Errorf("%w: anthropic has no image API", ErrUnsupported)
}

func (p *Anthropic) Models() CatalogEntry {
	return CatalogEntry{
		Provider:   p.Name(),
		TextModels: []string{anthropicDefaultModel, "claude-sonnet-4-5"},
	}
}
