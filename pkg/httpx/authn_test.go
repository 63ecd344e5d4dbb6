package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/edgegate/pkg/tokenx"
)

var testSecret = []byte("unit-test-signing-secret")

func staticSecret(secret []byte) SecretSource {
	return func(context.Context) ([]byte, error) { return secret, nil }
}

func mintToken(t *testing.T, payload map[string]any, secret []byte) string {
	t.Helper()
	token, err := tokenx.Sign(nil, payload, secret)
	require.NoError(t, err)
	return token
}

func TestAuthnMiddleware(t *testing.T) {
	cfg := AuthConfig{Secret: staticSecret(testSecret), Issuer: "edgegate"}

	var captured AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := AuthFromContext(r.Context())
		require.True(t, ok)
		captured = auth
		w.WriteHeader(http.StatusOK)
	})
	handler := Chain(next, AuthnMiddleware(cfg))

	validPayload := func() map[string]any {
		return map[string]any{
			"sub":   "user-42",
			"email": "bob@example.com",
			"roles": []string{"user"},
			"iss":   "edgegate",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}
	}

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/ai/providers", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token populates auth context", func(t *testing.T) {
		rec := do("Bearer " + mintToken(t, validPayload(), testSecret))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-42", captured.UserID)
		require.Equal(t, "bob@example.com", captured.Email)
		require.Equal(t, []string{"user"}, captured.Roles)
	})

	t.Run("uniform 401 body across failure modes", func(t *testing.T) {
		expired := validPayload()
		expired["exp"] = time.Now().Add(-time.Hour).Unix()

		wrongIssuer := validPayload()
		wrongIssuer["iss"] = "someone-else"

		noSubject := validPayload()
		delete(noSubject, "sub")

		cases := map[string]string{
			"missing header":    "",
			"not bearer":        "Basic dXNlcjpwYXNz",
			"lowercase scheme":  "bearer " + mintToken(t, validPayload(), testSecret),
			"garbage token":     "Bearer not.a.token",
			"wrong secret":      "Bearer " + mintToken(t, validPayload(), []byte("other-secret")),
			"expired":           "Bearer " + mintToken(t, expired, testSecret),
			"wrong issuer":      "Bearer " + mintToken(t, wrongIssuer, testSecret),
			"missing subject":   "Bearer " + mintToken(t, noSubject, testSecret),
		}

		var bodies []string
		for name, authz := range cases {
			rec := do(authz)
			require.Equalf(t, http.StatusUnauthorized, rec.Code, "case %q", name)
			require.Equalf(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"), "case %q", name)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equalf(t, ErrorCodeUnauthorized, body.Error, "case %q", name)
			require.Emptyf(t, body.Details, "case %q: failure detail must not leak", name)
			bodies = append(bodies, rec.Body.String())
		}

		for _, b := range bodies {
			require.Equal(t, bodies[0], b, "all 401 bodies must be byte-identical")
		}
	})

	t.Run("secret retrieval failure folds into 401", func(t *testing.T) {
		failing := AuthConfig{
			Secret: func(context.Context) ([]byte, error) {
				return nil, errors.New("secret store down")
			},
		}
		h := Chain(next, AuthnMiddleware(failing))

		req := httptest.NewRequest(http.MethodGet, "/v1/ai/providers", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, validPayload(), testSecret))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
