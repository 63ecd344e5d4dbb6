package gatewaysdk

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// SessionRequest is the body of POST /v1/auth/session.
type SessionRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse carries the freshly minted short-lived access token.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// UploadResponse is returned by POST /v1/r2/upload.
type UploadResponse struct {
	Key  string `json:"key"`
	ETag string `json:"etag"`
	URL  string `json:"url"`
}

// SignedPutResponse is returned by GET /v1/r2/signed-put.
type SignedPutResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// DeleteResponse is returned by DELETE /v1/r2/object.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

// TextGenerateRequest is the body of POST /v1/ai/text-generate.
type TextGenerateRequest struct {
	Model    string `json:"model,omitempty"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider,omitempty"`

	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature is a pointer so "unset" and "zero" stay distinct.
	Temperature *float64 `json:"temperature,omitempty"`

	// Cache opts the request into server-side response caching.
	Cache bool `json:"cache,omitempty"`
}

// Usage is upstream token accounting, present when the provider reports it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TextGenerateResponse is the normalized text-generation result.
type TextGenerateResponse struct {
	Response string `json:"response"`
	Usage    *Usage `json:"usage,omitempty"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

// ImageGenerateRequest is the body of POST /v1/ai/image-generate.
type ImageGenerateRequest struct {
	Model    string `json:"model,omitempty"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider,omitempty"`
}

// ImageGenerateResponse carries the generated image, base64-encoded or as
// an upstream URL depending on the provider.
type ImageGenerateResponse struct {
	Result   string `json:"result"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// ProviderEntry describes one inference provider in the public catalog.
type ProviderEntry struct {
	Provider    string   `json:"provider"`
	TextModels  []string `json:"text_models,omitempty"`
	ImageModels []string `json:"image_models,omitempty"`
	Default     bool     `json:"default,omitempty"`
}

// ProvidersResponse is returned by GET /v1/ai/providers.
type ProvidersResponse struct {
	Providers []ProviderEntry `json:"providers"`
}

// ErrorResponse is the uniform error body for all JSON routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
