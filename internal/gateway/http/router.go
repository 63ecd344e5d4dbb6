package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/edgegate/internal/gateway/service"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	"github.com/aussiebroadwan/edgegate/pkg/httpx"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"

	_ "github.com/aussiebroadwan/edgegate/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	authConfig httpx.AuthConfig
	counters   store.Counters
	logger     *slog.Logger

	StorageService *service.StorageService
	AIService      *service.AIService
	SessionService *service.SessionService
}

func NewRouter(authConfig httpx.AuthConfig, counters store.Counters, logger *slog.Logger) *Router {
	r := &Router{
		Mux:        http.NewServeMux(),
		authConfig: authConfig,
		counters:   counters,
		logger:     logger,
	}

	// CORS runs outermost so preflights and error responses carry the
	// headers too.
	r.middlewares = []httpx.Middleware{
		httpx.CORSMiddleware(),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerSession()
	r.registerStorage()
	r.registerAI()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Anything unrouted gets the uniform JSON 404 instead of the
	// ServeMux plain-text default.
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrorCodeNotFound, "")
	})
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			EdgeGate API
//	@version		0.1.0
//	@description	Stateless authentication and authorization gateway fronting
//	@description	object storage and AI inference providers. Access tokens are
//	@description	HS256-signed and verified on every request.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/edgegate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with token verification then per-subject rate limiting.
// The order matters: the limiter keys off the subject the authn middleware
// put into the request context.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.authConfig),
		httpx.RateLimitMiddleware(r.counters, httpx.DefaultRateLimit, httpx.SubjectKeyExtractor),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health", HealthHandler())
}

func (r *Router) registerSession() {
	// Public endpoint, so brute-force protection is by client IP.
	h := &SessionHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/auth/session",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictIPLimit),
		),
	)
}

func (r *Router) registerStorage() {
	h := &StorageHandler{StorageService: r.StorageService}

	r.Mux.Handle("POST /v1/r2/upload", r.secured(http.HandlerFunc(h.HandleUpload)))
	r.Mux.Handle("GET /v1/r2/signed-put", r.secured(http.HandlerFunc(h.HandleSignedPut)))
	r.Mux.Handle("GET /v1/r2/object", r.secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("DELETE /v1/r2/object", r.secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerAI() {
	h := &AIHandler{AIService: r.AIService}

	r.Mux.Handle("POST /v1/ai/text-generate", r.secured(http.HandlerFunc(h.HandleTextGenerate)))
	r.Mux.Handle("POST /v1/ai/image-generate", r.secured(http.HandlerFunc(h.HandleImageGenerate)))
	r.Mux.Handle("GET /v1/ai/providers", r.secured(http.HandlerFunc(h.HandleProviders)))
}
