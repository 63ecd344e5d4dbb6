package httpx

import "net/http"

// CORS policy for the gateway. The worker fronts browser clients directly,
// so every terminal response carries these headers, error responses included.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization,content-type"
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
)

// CORSMiddleware injects the CORS headers on every response and terminates
// OPTIONS preflight requests with 204 before any auth or rate limiting runs.
func CORSMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			SetCORSHeaders(w)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetCORSHeaders applies the gateway's CORS policy to a response.
func SetCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
}
