// Package ai normalizes text and image generation across upstream inference
// providers. Each provider speaks its own wire dialect; the gateway exposes
// one request and one response shape regardless of which backend served it.
package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider reports a provider name outside the registry.
	ErrUnknownProvider = errors.New("ai: unknown provider")

	// ErrUnsupported reports an operation a provider cannot perform,
	// e.g. image generation on a text-only backend.
	ErrUnsupported = errors.New("ai: operation not supported by provider")
)

// TextRequest is the normalized text-generation input.
type TextRequest struct {
	// Model is provider-specific; empty selects the provider default.
	Model string

	Prompt string

	// MaxTokens caps the completion length; 0 uses the provider default.
	MaxTokens int

	// Temperature below 0 uses the provider default.
	Temperature float64
}

// Usage is reported when the upstream provider returns token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TextResult is the normalized text-generation output.
type TextResult struct {
	Response string
	Usage    *Usage
	Model    string
}

// ImageRequest is the normalized image-generation input.
type ImageRequest struct {
	Model  string
	Prompt string
}

// ImageResult carries the generated image as base64 or an upstream URL,
// whichever the provider produced.
type ImageResult struct {
	Result string
	Model  string
}

// Provider is a single upstream inference backend.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, req TextRequest) (TextResult, error)
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error)
	Models() CatalogEntry
}

// Registry resolves provider names, falling back to a configured default.
type Registry struct {
	providers map[string]Provider
	def       string
}

// NewRegistry builds a registry; the first provider becomes the default
// unless SetDefault overrides it.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if r.def == "" {
			r.def = p.Name()
		}
		r.providers[p.Name()] = p
	}
	return r
}

// SetDefault selects the provider used when a request names none.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	r.def = name
	return nil
}

// Resolve returns the provider for name, or the default for empty name.
func (r *Registry) Resolve(name string) (Provider, error) {
	if name == "" {
		name = r.def
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Catalog lists every registered provider's entry, default first.
func (r *Registry) Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(r.providers))
	if p, ok := r.providers[r.def]; ok {
		entry := p.Models()
		entry.Default = true
		entries = append(entries, entry)
	}
	for name, p := range r.providers {
		if name == r.def {
			continue
		}
		entries = append(entries, p.Models())
	}
	return entries
}

// CatalogEntry describes one provider in the public catalog.
type CatalogEntry struct {
	Provider    string   `json:"provider"`
	TextModels  []string `json:"text_models,omitempty"`
	ImageModels []string `json:"image_models,omitempty"`
	Default     bool     `json:"default,omitempty"`
}
