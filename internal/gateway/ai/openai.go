package ai

import (
	"context"
	"fmt"
	"net/http"
)

const (
	openaiDefaultBaseURL    = "https://api.openai.com"
	openaiDefaultTextModel  = "gpt-4o-mini"
	openaiDefaultImageModel = "gpt-image-1"
)

// OpenAI drives the OpenAI chat-completions and image APIs.
type OpenAI struct {
	APIKey  string
	BaseURL string // override for tests; defaults to the public API
	Client  *http.Client
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) baseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	return openaiDefaultBaseURL
}

func (p *OpenAI) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + p.APIKey}
}

func (p *OpenAI) GenerateText(ctx context.Context, req TextRequest) (TextResult, error) {
	model := req.Model
	if model == "" {
		model = openaiDefaultTextModel
	}

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	if req.Temperature >= 0 {
		payload["temperature"] = req.Temperature
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *Usage `json:"usage"`
	}
	if err := httpJSON(ctx, defaultHTTPClient(p.Client), p.baseURL()+"/v1/chat/completions", p.headers(), payload, &out); err != nil {
		return TextResult{}, err
	}
	if len(out.Choices) == 0 {
		return TextResult{}, fmt.Errorf("ai: openai returned no choices")
	}

	return TextResult{
		Response: out.Choices[0].Message.Content,
		Usage:    out.Usage,
		Model:    model,
	}, nil
}

func (p *OpenAI) GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	model := req.Model
	if model == "" {
		model = openaiDefaultImageModel
	}

	payload := map[string]any{
		"model":  model,
		"prompt": req.Prompt,
	}

	var out struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := httpJSON(ctx, defaultHTTPClient(p.Client), p.baseURL()+"/v1/images/generations", p.headers(), payload, &out); err != nil {
		return ImageResult{}, err
	}
	if len(out.Data) == 0 {
		return ImageResult{}, fmt.Errorf("ai: openai returned no image data")
	}

	result := out.Data[0].B64JSON
	if result == "" {
		result = out.Data[0].URL
	}
	return ImageResult{Result: result, Model: model}, nil
}

func (p *OpenAI) Models() CatalogEntry {
	return CatalogEntry{
		Provider:    p.Name(),
		TextModels:  []string{openaiDefaultTextModel, "gpt-4o"},
		ImageModels: []string{openaiDefaultImageModel, "dall-e-3"},
	}
}
