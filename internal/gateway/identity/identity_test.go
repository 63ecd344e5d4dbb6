package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "Bearer provider-key", r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "refresh-xyz", body["refresh_token"])

			_ = json.NewEncoder(w).Encode(Identity{
				UserID: "user-9",
				Email:  "dave@example.com",
				Roles:  []string{"user"},
			})
		}))
		defer srv.Close()

		v := &HTTPVerifier{Endpoint: srv.URL, APIKey: "provider-key"}
		id, err := v.VerifyRefreshToken(ctx, "refresh-xyz")
		require.NoError(t, err)
		require.Equal(t, "user-9", id.UserID)
		require.Equal(t, "dave@example.com", id.Email)
	})

	t.Run("rejection statuses map to ErrInvalidToken", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			v := &HTTPVerifier{Endpoint: srv.URL}
			_, err := v.VerifyRefreshToken(ctx, "whatever")
			require.ErrorIsf(t, err, ErrInvalidToken, "status %d", status)
			srv.Close()
		}
	})

	t.Run("provider outage is not an auth failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		v := &HTTPVerifier{Endpoint: srv.URL}
		_, err := v.VerifyRefreshToken(ctx, "whatever")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token short-circuits", func(t *testing.T) {
		v := &HTTPVerifier{Endpoint: "http://127.0.0.1:1"}
		_, err := v.VerifyRefreshToken(ctx, "")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Identity{Email: "nobody@example.com"})
		}))
		defer srv.Close()

		v := &HTTPVerifier{Endpoint: srv.URL}
		_, err := v.VerifyRefreshToken(ctx, "refresh-xyz")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
