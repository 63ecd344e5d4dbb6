package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes chat completion", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/chat/completions", r.URL.Path)
			require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_, _ = w.Write([]byte(`{
				"choices": [{"message": {"content": "the answer"}}],
				"usage": {"prompt_tokens": 4, "completion_tokens": 2, "total_tokens": 6}
			}`))
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		got, err := p.GenerateText(ctx, TextRequest{Prompt: "question", MaxTokens: 64, Temperature: 0.2})
		require.NoError(t, err)

		require.Equal(t, "the answer", got.Response)
		require.Equal(t, openaiDefaultTextModel, got.Model)
		require.NotNil(t, got.Usage)
		require.Equal(t, 6, got.Usage.TotalTokens)

		require.Equal(t, openaiDefaultTextModel, gotBody["model"])
		require.EqualValues(t, 64, gotBody["max_tokens"])
		require.EqualValues(t, 0.2, gotBody["temperature"])
	})

	t.Run("default-temperature sentinel is omitted", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "x"}}]}`))
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		_, err := p.GenerateText(ctx, TextRequest{Prompt: "q", Temperature: -1})
		require.NoError(t, err)
		require.NotContains(t, gotBody, "temperature")
		require.NotContains(t, gotBody, "max_tokens")
	})

	t.Run("upstream error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		_, err := p.GenerateText(ctx, TextRequest{Prompt: "q"})
		require.Error(t, err)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		_, err := p.GenerateText(ctx, TextRequest{Prompt: "q"})
		require.Error(t, err)
	})
}

func TestOpenAIGenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers b64 payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/images/generations", r.URL.Path)
			_, _ = w.Write([]byte(`{"data": [{"b64_json": "aW1n", "url": "https://cdn.example/img.png"}]}`))
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		got, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a cat"})
		require.NoError(t, err)
		require.Equal(t, "aW1n", got.Result)
	})

	t.Run("falls back to url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": [{"url": "https://cdn.example/img.png"}]}`))
		}))
		defer srv.Close()

		p := &OpenAI{APIKey: "sk-test", BaseURL: srv.URL}
		got, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a cat"})
		require.NoError(t, err)
		require.Equal(t, "https://cdn.example/img.png", got.Result)
	})
}

func TestAnthropicGenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes message response", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/messages", r.URL.Path)
			require.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
			require.NotEmpty(t, r.Header.Get("anthropic-version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_, _ = w.Write([]byte(`{
				"content": [{"type": "text", "text": "claude says hi"}],
				"usage": {"input_tokens": 5, "output_tokens": 3}
			}`))
		}))
		defer srv.Close()

		p := &Anthropic{APIKey: "sk-ant-test", BaseURL: srv.URL}
		got, err := p.GenerateText(ctx, TextRequest{Prompt: "hello", Temperature: -1})
		require.NoError(t, err)

		require.Equal(t, "claude says hi", got.Response)
		require.NotNil(t, got.Usage)
		require.Equal(t, 5, got.Usage.PromptTokens)
		require.Equal(t, 3, got.Usage.CompletionTokens)
		require.Equal(t, 8, got.Usage.TotalTokens)

		// max_tokens is mandatory on this API, so a default must be sent.
		require.NotZero(t, gotBody["max_tokens"])
	})

	t.Run("image generation is unsupported", func(t *testing.T) {
		p := &Anthropic{APIKey: "sk-ant-test"}
		_, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a cat"})
		require.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestWorkersAIGenerateText(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/client/v4/accounts/acct-1/ai/run/"+workersAIDefaultTextModel, r.URL.Path)
		require.Equal(t, "Bearer cf-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success": true, "result": {"response": "flare"}}`))
	}))
	defer srv.Close()

	p := &WorkersAI{AccountID: "acct-1", APIToken: "cf-token", BaseURL: srv.URL}
	got, err := p.GenerateText(ctx, TextRequest{Prompt: "q", Temperature: -1})
	require.NoError(t, err)
	require.Equal(t, "flare", got.Response)
	require.Nil(t, got.Usage)
}

func TestWorkersAIGenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": true, "result": {"image": "aW1hZ2U="}}`))
		}))
		defer srv.Close()

		p := &WorkersAI{AccountID: "acct-1", APIToken: "cf-token", BaseURL: srv.URL}
		got, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a dog"})
		require.NoError(t, err)
		require.Equal(t, "aW1hZ2U=", got.Result)
		require.Equal(t, workersAIDefaultImageModel, got.Model)
	})

	t.Run("reported failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "result": {}}`))
		}))
		defer srv.Close()

		p := &WorkersAI{AccountID: "acct-1", APIToken: "cf-token", BaseURL: srv.URL}
		_, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a dog"})
		require.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	alpha := &OpenAI{APIKey: "a"}
	beta := &Anthropic{APIKey: "b"}
	r := NewRegistry(alpha, beta)

	t.Run("empty name resolves default", func(t *testing.T) {
		p, err := r.Resolve("")
		require.NoError(t, err)
		require.Equal(t, "openai", p.Name())
	})

	t.Run("set default", func(t *testing.T) {
		require.NoError(t, r.SetDefault("anthropic"))
		p, err := r.Resolve("")
		require.NoError(t, err)
		require.Equal(t, "anthropic", p.Name())

		require.ErrorIs(t, r.SetDefault("missing"), ErrUnknownProvider)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.Resolve("missing")
		require.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("catalog marks default first", func(t *testing.T) {
		entries := r.Catalog()
		require.Len(t, entries, 2)
		require.Equal(t, "anthropic", entries[0].Provider)
		require.True(t, entries[0].Default)
	})
}
