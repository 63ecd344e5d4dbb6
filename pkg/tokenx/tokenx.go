// Package tokenx implements a compact HS256-signed token codec.
//
// The codec is deliberately fixed-function: tokens are always signed with
// HMAC-SHA256 and the "alg" header of an inbound token is never read, so an
// attacker cannot downgrade verification by supplying a different algorithm.
package tokenx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrMalformed    = errors.New("tokenx: malformed token")
	ErrBadSignature = errors.New("tokenx: invalid signature")
	ErrExpired      = errors.New("tokenx: token expired")
	ErrIssuer       = errors.New("tokenx: issuer mismatch")
	ErrAudience     = errors.New("tokenx: audience mismatch")
)

// DefaultHeader is the header used by Sign when none is provided.
func DefaultHeader() map[string]any {
	return map[string]any{"alg": "HS256", "typ": "JWT"}
}

// Sign serialises header and payload as canonical JSON (encoding/json sorts
// map keys), base64url-encodes each without padding and appends the
// HMAC-SHA256 signature over "header.payload" as the third segment.
//
// Identical inputs always produce an identical token.
func Sign(header, payload map[string]any, secret []byte) (string, error) {
	if header == nil {
		header = DefaultHeader()
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." +
		base64.RawURLEncoding.EncodeToString(payloadJSON)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// VerifyOptions captures the expectations enforced by Verify.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience the token must contain (claims.aud). Empty means "don't care".
	Audience string

	// Now overrides the time source, mainly for tests. Defaults to time.Now.
	Now func() time.Time
}

// Verify checks the token's structure, signature and registered claims and
// returns the decoded payload claims.
//
// The signature comparison is constant time over the full signature length so
// the position of the first differing byte is not observable. A token without
// an "exp" claim skips the expiry check entirely and is treated as
// non-expiring.
func Verify(token string, secret []byte, opts VerifyOptions) (Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, ErrMalformed
	}

	headerRaw, err := decodeSegment(segments[0])
	if err != nil {
		return nil, ErrMalformed
	}
	payloadRaw, err := decodeSegment(segments[1])
	if err != nil {
		return nil, ErrMalformed
	}
	signature, err := decodeSegment(segments[2])
	if err != nil {
		return nil, ErrMalformed
	}

	var header map[string]any
	if err := json.Unmarshal(headerRaw, &header); err != nil {
		return nil, ErrMalformed
	}
	var claims Claims
	if err := json.Unmarshal(payloadRaw, &claims); err != nil {
		return nil, ErrMalformed
	}

	// Recompute over the literal wire segments, not re-serialised JSON, so
	// verification is independent of any JSON formatting quirks.
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(segments[0] + "." + segments[1]))
	if !constantTimeEqual(mac.Sum(nil), signature) {
		return nil, ErrBadSignature
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	if exp, ok := claims.ExpiresAt(); ok && now().Unix() > exp {
		return nil, ErrExpired
	}

	if opts.Issuer != "" {
		if iss, _ := claims["iss"].(string); iss != opts.Issuer {
			return nil, ErrIssuer
		}
	}
	if opts.Audience != "" && !claims.hasAudience(opts.Audience) {
		return nil, ErrAudience
	}

	return claims, nil
}

// decodeSegment restores padding to a base64url segment and decodes it.
func decodeSegment(seg string) ([]byte, error) {
	if rem := len(seg) % 4; rem != 0 {
		seg += strings.Repeat("=", 4-rem)
	}
	return base64.URLEncoding.DecodeString(seg)
}

// constantTimeEqual reports whether a and b are equal, XOR-accumulating over
// every byte. A length mismatch fails immediately; otherwise the loop always
// runs to completion regardless of where the first difference occurs.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
