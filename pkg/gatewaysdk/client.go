package gatewaysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx gateway response surfaced as an error.
type APIError struct {
	StatusCode int
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("gateway: %s (%d): %s", e.Code, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("gateway: %s (%d)", e.Code, e.StatusCode)
}

// Client talks to a running gateway instance.
type Client struct {
	BaseURL    string
	Token      string // bearer token attached to authenticated calls
	HTTPClient *http.Client
}

// NewClient builds a client with a sane default timeout. token may be empty
// for unauthenticated calls such as Health and MintSession.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Health calls GET /health. The endpoint answers plain "ok"; anything else
// is an error.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Code: "unhealthy"}
	}
	return nil
}

// MintSession exchanges an identity-provider refresh token for a short-lived
// gateway access token.
func (c *Client) MintSession(ctx context.Context, refreshToken string) (SessionResponse, error) {
	var out SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/session", false,
		SessionRequest{RefreshToken: refreshToken}, &out)
	return out, err
}

// SignedPutURL returns a presigned PUT URL for a direct-to-storage upload.
func (c *Client) SignedPutURL(ctx context.Context, key string) (SignedPutResponse, error) {
	var out SignedPutResponse
	err := c.do(ctx, http.MethodGet, "/v1/r2/signed-put?key="+url.QueryEscape(key), true, nil, &out)
	return out, err
}

// DeleteObject removes an object by key.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	var out DeleteResponse
	return c.do(ctx, http.MethodDelete, "/v1/r2/object?key="+url.QueryEscape(key), true, nil, &out)
}

// TextGenerate proxies a normalized text-generation request.
func (c *Client) TextGenerate(ctx context.Context, req TextGenerateRequest) (TextGenerateResponse, error) {
	var out TextGenerateResponse
	err := c.do(ctx, http.MethodPost, "/v1/ai/text-generate", true, req, &out)
	return out, err
}

// ImageGenerate proxies a normalized image-generation request.
func (c *Client) ImageGenerate(ctx context.Context, req ImageGenerateRequest) (ImageGenerateResponse, error) {
	var out ImageGenerateResponse
	err := c.do(ctx, http.MethodPost, "/v1/ai/image-generate", true, req, &out)
	return out, err
}

// Providers fetches the static provider/model catalog.
func (c *Client) Providers(ctx context.Context) (ProvidersResponse, error) {
	var out ProvidersResponse
	err := c.do(ctx, http.MethodGet, "/v1/ai/providers", true, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "server_error"}
		var parsed ErrorResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
			apiErr.Code = parsed.Error
			apiErr.Details = parsed.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
