package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/edgegate/internal/gateway/service"
	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/httpx"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

type StorageHandler struct {
	StorageService *service.StorageService
}

// HandleUpload proxies the request body into the object store.
//
//	@Summary		Proxy upload
//	@Description	Streams the raw request body into object storage under the given key.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Accept			octet-stream
//	@Produce		json
//	@Param			key			query		string						true	"Object key"
//	@Param			contentType	query		string						false	"Stored content type"
//	@Success		200			{object}	gatewaysdk.UploadResponse	"Stored object"
//	@Failure		400			{object}	gatewaysdk.ErrorResponse	"Missing object key"
//	@Failure		401			{object}	gatewaysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500			{object}	gatewaysdk.ErrorResponse	"Storage backend failure"
//	@Router			/v1/r2/upload [post].
func (h *StorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	key := r.URL.Query().Get("key")
	if key == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "key query parameter is required")
		return
	}

	contentType := r.URL.Query().Get("contentType")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.StorageService.Upload(ctx, key, contentType, r.Body, r.ContentLength)
	if err != nil {
		log.Error("upload failed", "key", key, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorCodeUpstream, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSignedPut returns a presigned PUT URL for a direct upload.
//
//	@Summary		Presigned PUT URL
//	@Description	Computes a time-limited URL the client can PUT to directly, bypassing the gateway.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Produce		json
//	@Param			key	query		string							true	"Object key"
//	@Success		200	{object}	gatewaysdk.SignedPutResponse	"Presigned URL"
//	@Failure		400	{object}	gatewaysdk.ErrorResponse		"Missing object key"
//	@Failure		401	{object}	gatewaysdk.ErrorResponse		"Invalid or missing access token"
//	@Router			/v1/r2/signed-put [get].
func (h *StorageHandler) HandleSignedPut(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "key query parameter is required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.StorageService.SignedPutURL(key, time.Now()))
}

// HandleGet streams an object back with its stored content type.
//
//	@Summary		Fetch object
//	@Description	Streams the object body with the content type recorded at upload time.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Produce		octet-stream
//	@Param			key	query		string	true	"Object key"
//	@Success		200	{file}		binary	"Object body"
//	@Failure		400	{object}	gatewaysdk.ErrorResponse	"Missing object key"
//	@Failure		401	{object}	gatewaysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	gatewaysdk.ErrorResponse	"No such object"
//	@Failure		500	{object}	gatewaysdk.ErrorResponse	"Storage backend failure"
//	@Router			/v1/r2/object [get].
func (h *StorageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	key := r.URL.Query().Get("key")
	if key == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "key query parameter is required")
		return
	}

	body, contentType, err := h.StorageService.Fetch(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrorCodeNotFound, "")
			return
		}
		log.Error("object fetch failed", "key", key, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorCodeUpstream, "")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		log.Warn("object stream interrupted", "key", key, "err", err)
	}
}

// HandleDelete removes an object.
//
//	@Summary		Delete object
//	@Description	Deletes the object by key. Deleting an absent key still returns ok.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Produce		json
//	@Param			key	query		string						true	"Object key"
//	@Success		200	{object}	gatewaysdk.DeleteResponse	"Deleted"
//	@Failure		400	{object}	gatewaysdk.ErrorResponse	"Missing object key"
//	@Failure		401	{object}	gatewaysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	gatewaysdk.ErrorResponse	"Storage backend failure"
//	@Router			/v1/r2/object [delete].
func (h *StorageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	key := r.URL.Query().Get("key")
	if key == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeBadRequest, "key query parameter is required")
		return
	}

	if err := h.StorageService.Remove(ctx, key); err != nil {
		log.Error("object delete failed", "key", key, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorCodeUpstream, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.DeleteResponse{OK: true})
}
