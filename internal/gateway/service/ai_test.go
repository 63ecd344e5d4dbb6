package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/edgegate/internal/gateway/ai"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
)

type fakeProvider struct {
	name      string
	textCalls int
	lastReq   ai.TextRequest
	textErr   error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GenerateText(_ context.Context, req ai.TextRequest) (ai.TextResult, error) {
	f.textCalls++
	f.lastReq = req
	if f.textErr != nil {
		return ai.TextResult{}, f.textErr
	}
	return ai.TextResult{
		Response: "generated: " + req.Prompt,
		Usage:    &ai.Usage{PromptTokens: 3, CompletionTokens: 7, TotalTokens: 10},
		Model:    "fake-model",
	}, nil
}

func (f *fakeProvider) GenerateImage(_ context.Context, req ai.ImageRequest) (ai.ImageResult, error) {
	return ai.ImageResult{Result: "base64-image", Model: "fake-image-model"}, nil
}

func (f *fakeProvider) Models() ai.CatalogEntry {
	return ai.CatalogEntry{Provider: f.name, TextModels: []string{"fake-model"}}
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Put(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func TestGenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes provider output", func(t *testing.T) {
		provider := &fakeProvider{name: "fake"}
		svc := &AIService{Registry: ai.NewRegistry(provider)}

		resp, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hello"})
		require.NoError(t, err)
		require.Equal(t, "generated: hello", resp.Response)
		require.Equal(t, "fake", resp.Provider)
		require.Equal(t, "fake-model", resp.Model)
		require.NotNil(t, resp.Usage)
		require.Equal(t, 10, resp.Usage.TotalTokens)
		require.False(t, resp.Cached)
	})

	t.Run("unset temperature passes provider-default sentinel", func(t *testing.T) {
		provider := &fakeProvider{name: "fake"}
		svc := &AIService{Registry: ai.NewRegistry(provider)}

		_, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hi"})
		require.NoError(t, err)
		require.Equal(t, float64(-1), provider.lastReq.Temperature)

		zero := 0.0
		_, err = svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hi", Temperature: &zero})
		require.NoError(t, err)
		require.Equal(t, float64(0), provider.lastReq.Temperature)
	})

	t.Run("unknown provider", func(t *testing.T) {
		svc := &AIService{Registry: ai.NewRegistry(&fakeProvider{name: "fake"})}

		_, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hi", Provider: "nope"})
		require.ErrorIs(t, err, ai.ErrUnknownProvider)
	})

	t.Run("upstream error propagates", func(t *testing.T) {
		provider := &fakeProvider{name: "fake", textErr: errors.New("upstream 500")}
		svc := &AIService{Registry: ai.NewRegistry(provider)}

		_, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hi"})
		require.Error(t, err)
	})
}

func TestGenerateTextCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("repeat request served from cache", func(t *testing.T) {
		provider := &fakeProvider{name: "fake"}
		svc := &AIService{Registry: ai.NewRegistry(provider), Cache: newMemCache()}

		req := gatewaysdk.TextGenerateRequest{Prompt: "hello", Cache: true}

		first, err := svc.GenerateText(ctx, req)
		require.NoError(t, err)
		require.False(t, first.Cached)

		second, err := svc.GenerateText(ctx, req)
		require.NoError(t, err)
		require.True(t, second.Cached)
		require.Equal(t, first.Response, second.Response)
		require.Equal(t, 1, provider.textCalls)
	})

	t.Run("different prompts do not collide", func(t *testing.T) {
		provider := &fakeProvider{name: "fake"}
		svc := &AIService{Registry: ai.NewRegistry(provider), Cache: newMemCache()}

		_, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "one", Cache: true})
		require.NoError(t, err)
		resp, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "two", Cache: true})
		require.NoError(t, err)

		require.False(t, resp.Cached)
		require.Equal(t, 2, provider.textCalls)
	})

	t.Run("opt-out skips the cache", func(t *testing.T) {
		provider := &fakeProvider{name: "fake"}
		cache := newMemCache()
		svc := &AIService{Registry: ai.NewRegistry(provider), Cache: cache}

		_, err := svc.GenerateText(ctx, gatewaysdk.TextGenerateRequest{Prompt: "hello"})
		require.NoError(t, err)
		require.Empty(t, cache.entries)
	})
}

func TestProvidersCatalog(t *testing.T) {
	svc := &AIService{Registry: ai.NewRegistry(
		&fakeProvider{name: "alpha"},
		&fakeProvider{name: "beta"},
	)}

	resp := svc.Providers()
	require.Len(t, resp.Providers, 2)
	require.Equal(t, "alpha", resp.Providers[0].Provider)
	require.True(t, resp.Providers[0].Default, "first registered provider is the default")
	require.False(t, resp.Providers[1].Default)
}
