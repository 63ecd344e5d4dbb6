package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/edgegate/internal/gateway/identity"
	"github.com/aussiebroadwan/edgegate/internal/gateway/service"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/httpx"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP exchanges a refresh token for a short-lived gateway token.
//
//	@Summary		Mint a session token
//	@Description	Verifies the refresh token with the identity service and returns a short-lived HS256 access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.SessionRequest	true	"Refresh token"
//	@Success		200		{object}	gatewaysdk.SessionResponse	"Session token"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse	"Malformed request body"
//	@Failure		401		{object}	gatewaysdk.ErrorResponse	"Refresh token rejected"
//	@Failure		500		{object}	gatewaysdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/session [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatewaysdk.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "refresh_token is required")
		return
	}

	resp, err := h.SessionService.Mint(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorCodeUnauthorized, "")
			return
		}
		log.Error("session mint failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorCodeServer, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
