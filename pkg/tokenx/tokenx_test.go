package tokenx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/edgegate/pkg/tokenx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("super-secret-signing-key")

func testPayload(exp int64) map[string]any {
	return map[string]any{
		"sub":   "user-123",
		"email": "alice@example.com",
		"roles": []string{"admin", "user"},
		"iat":   int64(1700000000),
		"exp":   exp,
		"iss":   "edgegate",
	}
}

func TestSignKnownAnswer(t *testing.T) {
	// Precomputed with an independent HS256 implementation over the same
	// canonical JSON serialisation.
	const want = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJlbWFpbCI6ImFsaWNlQGV4YW1wbGUuY29tIiwiZXhwIjoxODAwMDAwMDAwLCJpYXQiOjE3MDAwMDAwMDAsImlzcyI6ImVkZ2VnYXRlIiwicm9sZXMiOlsiYWRtaW4iLCJ1c2VyIl0sInN1YiI6InVzZXItMTIzIn0." +
		"gS7euciPjlMnqI196EoUbbuN1sNOSLcnb7jP9hkE_us"

	token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
	require.NoError(t, err)
	require.Equal(t, want, token)
}

func TestRoundTrip(t *testing.T) {
	token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
	require.NoError(t, err)

	claims, err := tokenx.Verify(token, testSecret, tokenx.VerifyOptions{
		Issuer: "edgegate",
		Now:    func() time.Time { return time.Unix(1700000100, 0) },
	})
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject())
	require.Equal(t, "alice@example.com", claims.Email())
	require.Equal(t, []string{"admin", "user"}, claims.Roles())

	exp, ok := claims.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, int64(1800000000), exp)
}

// Our hand-rolled tokens must verify under an independent JWT implementation,
// otherwise clients using standard libraries could not consume them.
func TestInteropWithGolangJWT(t *testing.T) {
	token, err := tokenx.Sign(nil, map[string]any{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iss": "edgegate",
	}, testSecret)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return testSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "user-123", sub)
}

func TestVerifyMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"one segment":   "abc",
		"two segments":  "abc.def",
		"four segments": "a.b.c.d",
		"bad base64":    "!!!.###.$$$",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tokenx.Verify(token, testSecret, tokenx.VerifyOptions{})
			require.ErrorIs(t, err, tokenx.ErrMalformed)
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
	require.NoError(t, err)

	_, err = tokenx.Verify(token, []byte("some-other-secret"), tokenx.VerifyOptions{
		Now: func() time.Time { return time.Unix(1700000100, 0) },
	})
	require.ErrorIs(t, err, tokenx.ErrBadSignature)
}

// Flipping any single bit anywhere in the token must surface as a malformed
// token or a bad signature, never as a silent success.
func TestTamperDetection(t *testing.T) {
	token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
	require.NoError(t, err)

	now := func() time.Time { return time.Unix(1700000100, 0) }

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		for bit := uint(0); bit < 8; bit++ {
			mutated := []byte(token)
			mutated[i] ^= 1 << bit
			if string(mutated) == token {
				continue
			}

			_, err := tokenx.Verify(string(mutated), testSecret, tokenx.VerifyOptions{Now: now})
			if err == nil {
				t.Fatalf("bit %d of byte %d flipped without verification failure", bit, i)
			}
			require.True(t,
				err == tokenx.ErrMalformed || err == tokenx.ErrBadSignature,
				"unexpected error %v at byte %d bit %d", err, i, bit)
		}
	}
}

func TestExpiryBoundary(t *testing.T) {
	const nowSec = int64(1750000000)
	now := func() time.Time { return time.Unix(nowSec, 0) }

	t.Run("exp equal to now is valid", func(t *testing.T) {
		token, err := tokenx.Sign(nil, testPayload(nowSec), testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{Now: now})
		require.NoError(t, err)
	})

	t.Run("exp one second in the past is expired", func(t *testing.T) {
		token, err := tokenx.Sign(nil, testPayload(nowSec-1), testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{Now: now})
		require.ErrorIs(t, err, tokenx.ErrExpired)
	})

	t.Run("missing exp skips the check", func(t *testing.T) {
		payload := testPayload(0)
		delete(payload, "exp")
		token, err := tokenx.Sign(nil, payload, testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{Now: now})
		require.NoError(t, err)
	})
}

func TestVerifyIssuerAudience(t *testing.T) {
	now := func() time.Time { return time.Unix(1700000100, 0) }

	t.Run("issuer mismatch", func(t *testing.T) {
		token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{
			Issuer: "someone-else",
			Now:    now,
		})
		require.ErrorIs(t, err, tokenx.ErrIssuer)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		payload := testPayload(1800000000)
		payload["aud"] = "mobile-app"
		token, err := tokenx.Sign(nil, payload, testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{
			Audience: "web-app",
			Now:      now,
		})
		require.ErrorIs(t, err, tokenx.ErrAudience)
	})

	t.Run("audience list contains match", func(t *testing.T) {
		payload := testPayload(1800000000)
		payload["aud"] = []string{"mobile-app", "web-app"}
		token, err := tokenx.Sign(nil, payload, testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{
			Audience: "web-app",
			Now:      now,
		})
		require.NoError(t, err)
	})

	t.Run("no expectations configured", func(t *testing.T) {
		token, err := tokenx.Sign(nil, testPayload(1800000000), testSecret)
		require.NoError(t, err)

		_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{Now: now})
		require.NoError(t, err)
	})
}

// An attacker-supplied "alg" header must not influence verification.
func TestAlgHeaderIgnored(t *testing.T) {
	token, err := tokenx.Sign(map[string]any{"alg": "none", "typ": "JWT"},
		testPayload(1800000000), testSecret)
	require.NoError(t, err)

	// Still verified as HS256: correct secret passes...
	_, err = tokenx.Verify(token, testSecret, tokenx.VerifyOptions{
		Now: func() time.Time { return time.Unix(1700000100, 0) },
	})
	require.NoError(t, err)

	// ...and an empty signature segment does not.
	parts := strings.Split(token, ".")
	_, err = tokenx.Verify(parts[0]+"."+parts[1]+".", testSecret, tokenx.VerifyOptions{})
	require.ErrorIs(t, err, tokenx.ErrBadSignature)
}
