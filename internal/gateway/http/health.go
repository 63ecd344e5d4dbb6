package http

import "net/http"

// HealthHandler reports liveness.
//
//	@Summary		Health check
//	@Description	Returns "ok" when the gateway process is serving requests.
//	@Tags			System
//	@Produce		plain
//	@Success		200	{string}	string	"ok"
//	@Router			/health [get].
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
