package ai

import (
	"context"
	"fmt"
	"net/http"
)

const (
	workersAIDefaultBaseURL    = "https://api.cloudflare.com"
	workersAIDefaultTextModel  = "@cf/meta/llama-3.1-8b-instruct"
	workersAIDefaultImageModel = "@cf/black-forest-labs/flux-1-schnell"
)

// WorkersAI drives the Cloudflare Workers AI run API. This is the default
// provider; it needs no extra account beyond the storage one.
type WorkersAI struct {
	AccountID string
	APIToken  string
	BaseURL   string
	Client    *http.Client
}

func (p *WorkersAI) Name() string { return "workers-ai" }

func (p *WorkersAI) runURL(model string) string {
	base := p.BaseURL
	if base == "" {
		base = workersAIDefaultBaseURL
	}
	return base + "/client/v4/accounts/" + p.AccountID + "/ai/run/" + model
}

func (p *WorkersAI) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + p.APIToken}
}

func (p *WorkersAI) GenerateText(ctx context.Context, req TextRequest) (TextResult, error) {
	model := req.Model
	if model == "" {
		model = workersAIDefaultTextModel
	}

	payload := map[string]any{"prompt": req.Prompt}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	if req.Temperature >= 0 {
		payload["temperature"] = req.Temperature
	}

	var out struct {
		Success bool `json:"success"`
		Result  struct {
			Response string `json:"response"`
		} `json:"result"`
	}
	if err := httpJSON(ctx, defaultHTTPClient(p.Client), p.runURL(model), p.headers(), payload, &out); err != nil {
		return TextResult{}, err
	}
	if !out.Success {
		return TextResult{}, fmt.Errorf("ai: workers-ai reported failure")
	}

	// Workers AI does not report token usage on the run endpoint.
	return TextResult{Response: out.Result.Response, Model: model}, nil
}

func (p *WorkersAI) GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	model := req.Model
	if model == "" {
		model = workersAIDefaultImageModel
	}

	var out struct {
		Success bool `json:"success"`
		Result  struct {
			Image string `json:"image"` // base64-encoded
		} `json:"result"`
	}
	payload := map[string]any{"prompt": req.Prompt}
	if err := httpJSON(ctx, defaultHTTPClient(p.Client), p.runURL(model), p.headers(), payload, &out); err != nil {
		return ImageResult{}, err
	}
	if !out.Success || out.Result.Image == "" {
		return ImageResult{}, fmt.Errorf("ai: workers-ai returned no image")
	}

	return ImageResult{Result: out.Result.Image, Model: model}, nil
}

func (p *WorkersAI) Models() CatalogEntry {
	return CatalogEntry{
		Provider:    p.Name(),
		TextModels:  []string{workersAIDefaultTextModel, "@cf/meta/llama-3.3-70b-instruct"},
		ImageModels: []string{workersAIDefaultImageModel, "@cf/stabilityai/stable-diffusion-xl-base-1.0"},
	}
}
