package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/edgegate/internal/gateway/identity"
	"github.com/aussiebroadwan/edgegate/internal/gateway/secrets"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/tokenx"
)

// SessionService exchanges an upstream refresh token for a short-lived
// gateway access token.
type SessionService struct {
	Identity identity.Verifier
	Secrets  secrets.Provider

	// SecretName is the signing secret's name in the secrets provider.
	SecretName string

	Issuer   string
	Audience string
	TTL      time.Duration

	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time
}

// Mint verifies the refresh token with the identity service and signs a
// fresh access token carrying the verified identity.
func (s *SessionService) Mint(ctx context.Context, refreshToken string) (gatewaysdk.SessionResponse, error) {
	id, err := s.Identity.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return gatewaysdk.SessionResponse{}, err
	}

	secret, err := s.Secrets.Get(ctx, s.SecretName)
	if err != nil {
		return gatewaysdk.SessionResponse{}, fmt.Errorf("signing secret: %w", err)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	expiresAt := now.Add(s.TTL)

	payload := map[string]any{
		"sub": id.UserID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	if id.Email != "" {
		payload["email"] = id.Email
	}
	if len(id.Roles) > 0 {
		payload["roles"] = id.Roles
	}
	if s.Issuer != "" {
		payload["iss"] = s.Issuer
	}
	if s.Audience != "" {
		payload["aud"] = s.Audience
	}

	token, err := tokenx.Sign(nil, payload, []byte(secret))
	if err != nil {
		return gatewaysdk.SessionResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	return gatewaysdk.SessionResponse{
		Token:     token,
		ExpiresIn: int(s.TTL.Seconds()),
	}, nil
}
