package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/edgegate/internal/gateway/ai"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

// DefaultCacheTTL is how long cached inference responses stay servable.
const DefaultCacheTTL = time.Hour

// AIService fronts the provider registry and optionally caches
// text-generation responses.
type AIService struct {
	Registry *ai.Registry

	// Cache is optional; nil disables response caching entirely.
	Cache    store.Cache
	CacheTTL time.Duration
}

// GenerateText resolves the provider, consults the cache when the request
// opts in, and normalizes the upstream result.
func (s *AIService) GenerateText(ctx context.Context, req gatewaysdk.TextGenerateRequest) (gatewaysdk.TextGenerateResponse, error) {
	provider, err := s.Registry.Resolve(req.Provider)
	if err != nil {
		return gatewaysdk.TextGenerateResponse{}, err
	}

	upstream := ai.TextRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: -1,
	}
	if req.Temperature != nil {
		upstream.Temperature = *req.Temperature
	}

	var key string
	if req.Cache && s.Cache != nil {
		key = textCacheKey(provider.Name(), upstream)
		if cached, ok := s.cacheLookup(ctx, key); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	result, err := provider.GenerateText(ctx, upstream)
	if err != nil {
		return gatewaysdk.TextGenerateResponse{}, err
	}

	resp := gatewaysdk.TextGenerateResponse{
		Response: result.Response,
		Provider: provider.Name(),
		Model:    result.Model,
	}
	if result.Usage != nil {
		resp.Usage = &gatewaysdk.Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		}
	}

	if key != "" {
		s.cacheStore(ctx, key, resp)
	}
	return resp, nil
}

// GenerateImage resolves the provider and returns the normalized image
// result. Image responses are never cached.
func (s *AIService) GenerateImage(ctx context.Context, req gatewaysdk.ImageGenerateRequest) (gatewaysdk.ImageGenerateResponse, error) {
	provider, err := s.Registry.Resolve(req.Provider)
	if err != nil {
		return gatewaysdk.ImageGenerateResponse{}, err
	}

	result, err := provider.GenerateImage(ctx, ai.ImageRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
	})
	if err != nil {
		return gatewaysdk.ImageGenerateResponse{}, err
	}

	return gatewaysdk.ImageGenerateResponse{
		Result:   result.Result,
		Provider: provider.Name(),
		Model:    result.Model,
	}, nil
}

// Providers returns the public catalog of configured providers.
func (s *AIService) Providers() gatewaysdk.ProvidersResponse {
	catalog := s.Registry.Catalog()
	entries := make([]gatewaysdk.ProviderEntry, 0, len(catalog))
	for _, c := range catalog {
		entries = append(entries, gatewaysdk.ProviderEntry{
			Provider:    c.Provider,
			TextModels:  c.TextModels,
			ImageModels: c.ImageModels,
			Default:     c.Default,
		})
	}
	return gatewaysdk.ProvidersResponse{Providers: entries}
}

func (s *AIService) cacheLookup(ctx context.Context, key string) (gatewaysdk.TextGenerateResponse, bool) {
	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("ai cache read failed", "error", err)
		}
		return gatewaysdk.TextGenerateResponse{}, false
	}

	var resp gatewaysdk.TextGenerateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		slogx.FromContext(ctx).Warn("ai cache entry corrupt", "error", err)
		return gatewaysdk.TextGenerateResponse{}, false
	}
	return resp, true
}

func (s *AIService) cacheStore(ctx context.Context, key string, resp gatewaysdk.TextGenerateResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	// Best effort: a cache write failure never fails the request.
	if err := s.Cache.Put(ctx, key, raw, ttl); err != nil {
		slogx.FromContext(ctx).Warn("ai cache write failed", "error", err)
	}
}

// textCacheKey derives a stable digest over every field that changes the
// upstream response.
func textCacheKey(provider string, req ai.TextRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s",
		provider,
		req.Model,
		req.Prompt,
		strconv.Itoa(req.MaxTokens),
		strconv.FormatFloat(req.Temperature, 'g', -1, 64),
	)
	return "ai:text:" + hex.EncodeToString(h.Sum(nil))
}
