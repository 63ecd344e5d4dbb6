package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/edgegate/internal/gateway/ai"
	"github.com/aussiebroadwan/edgegate/internal/gateway/service"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/httpx"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

type AIHandler struct {
	AIService *service.AIService
}

// HandleTextGenerate proxies a text-generation request to the selected
// provider.
//
//	@Summary		Generate text
//	@Description	Forwards the prompt to the named provider (or the default) and returns the normalized completion.
//	@Tags			AI
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.TextGenerateRequest	true	"Generation request"
//	@Success		200		{object}	gatewaysdk.TextGenerateResponse	"Normalized completion"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse		"Missing prompt or unknown provider"
//	@Failure		401		{object}	gatewaysdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		502		{object}	gatewaysdk.ErrorResponse		"Upstream provider failure"
//	@Router			/v1/ai/text-generate [post].
func (h *AIHandler) HandleTextGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatewaysdk.TextGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "malformed JSON body")
		return
	}
	if req.Prompt == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "prompt is required")
		return
	}

	resp, err := h.AIService.GenerateText(ctx, req)
	if err != nil {
		writeAIError(w, log, "text generation", req.Provider, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleImageGenerate proxies an image-generation request to the selected
// provider.
//
//	@Summary		Generate an image
//	@Description	Forwards the prompt to the named provider (or the default) and returns the image as base64 or an upstream URL.
//	@Tags			AI
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.ImageGenerateRequest		true	"Generation request"
//	@Success		200		{object}	gatewaysdk.ImageGenerateResponse	"Generated image"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse			"Missing prompt or unknown provider"
//	@Failure		401		{object}	gatewaysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		502		{object}	gatewaysdk.ErrorResponse			"Upstream provider failure"
//	@Router			/v1/ai/image-generate [post].
func (h *AIHandler) HandleImageGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatewaysdk.ImageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "malformed JSON body")
		return
	}
	if req.Prompt == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "prompt is required")
		return
	}

	resp, err := h.AIService.GenerateImage(ctx, req)
	if err != nil {
		writeAIError(w, log, "image generation", req.Provider, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleProviders returns the provider/model catalog.
//
//	@Summary		List providers
//	@Description	Returns the configured inference providers and their known models.
//	@Tags			AI
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.ProvidersResponse	"Provider catalog"
//	@Failure		401	{object}	gatewaysdk.ErrorResponse		"Invalid or missing access token"
//	@Router			/v1/ai/providers [get].
func (h *AIHandler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.AIService.Providers())
}

// writeAIError maps provider error kinds onto HTTP statuses. Client-side
// selection mistakes are 400; anything that failed upstream is 502.
func writeAIError(w http.ResponseWriter, log *slog.Logger, op, provider string, err error) {
	switch {
	case errors.Is(err, ai.ErrUnknownProvider):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "unknown provider")
	case errors.Is(err, ai.ErrUnsupported):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "operation not supported by provider")
	default:
		log.Error(op+" failed", "provider", provider, "err", err)
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorCodeUpstream, "")
	}
}
