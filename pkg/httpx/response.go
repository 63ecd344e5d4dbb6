package httpx

import (
	"encoding/json"
	"net/http"
)

// Stable machine-parseable error codes used across every route. The HTTP
// layer is the only place internal error kinds map onto these.
const (
	ErrorCodeBadRequest   = "bad_request"
	ErrorCodeUnauthorized = "unauthorized"
	ErrorCodeRateLimited  = "rate_limit_exceeded"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeUpstream     = "upstream_error"
	ErrorCodeServer       = "server_error"
)

// ErrorResponse is the uniform error body for all JSON routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform JSON error body. Details should only carry
// client-safe text; upstream failure detail belongs in logs, not here.
func WriteError(w http.ResponseWriter, status int, code, details string) {
	WriteJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
