// Package identity is the narrow interface to the external identity
// provider. The gateway only ever asks it one question: does this refresh
// token belong to a real user, and who are they.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrInvalidToken reports a refresh token the provider rejected.
var ErrInvalidToken = errors.New("identity: invalid refresh token")

// Identity is the provider's answer for a valid refresh token.
type Identity struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

// Verifier validates an upstream refresh token.
type Verifier interface {
	VerifyRefreshToken(ctx context.Context, refreshToken string) (Identity, error)
}

// HTTPVerifier asks the identity provider over HTTPS.
type HTTPVerifier struct {
	// Endpoint accepts POST {"refresh_token": ...} and answers with an
	// Identity document on 200.
	Endpoint string

	// APIKey authenticates the gateway itself to the provider, optional.
	APIKey string

	// Client defaults to a 10s-timeout client.
	Client *http.Client
}

func (v *HTTPVerifier) httpClient() *http.Client {
	if v.Client != nil {
		return v.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (v *HTTPVerifier) VerifyRefreshToken(ctx context.Context, refreshToken string) (Identity, error) {
	if refreshToken == "" {
		return Identity{}, ErrInvalidToken
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return Identity{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if v.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.APIKey)
	}

	resp, err := v.httpClient().Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest:
		return Identity{}, ErrInvalidToken
	default:
		return Identity{}, fmt.Errorf("identity: provider returned status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("identity: decoding provider response: %w", err)
	}
	if id.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
