package httpx

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

// CounterStore is the durable backing for the fixed-window rate limiter.
// Add must atomically increment the counter and return the new value, with
// ttl applied from the first write, so correctness never depends on the
// store serialising a separate read-then-write.
type CounterStore interface {
	Add(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimitConfig defines the fixed-window parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the cap per subject per window.
	RequestsPerWindow int

	// Window is the fixed bucket width. Counters key on
	// floor(unixMillis/Window), so bursts straddling a boundary can admit
	// up to twice the cap across the two adjacent windows.
	Window time.Duration

	// CounterTTL expires counters shortly after their window closes,
	// covering clock skew between gateway instances.
	CounterTTL time.Duration
}

// DefaultRateLimit is the per-subject cap applied to authenticated routes.
// Override with RATELIMIT_SUBJECT_REQUESTS / RATELIMIT_SUBJECT_WINDOW_SEC.
var DefaultRateLimit = RateLimitConfig{
	RequestsPerWindow: 100,
	Window:            time.Minute,
	CounterTTL:        70 * time.Second,
}

func init() {
	DefaultRateLimit = ParseRateLimitFromEnv("SUBJECT", DefaultRateLimit)
}

// ParseRateLimitFromEnv reads rate limit configuration from environment
// variables following the pattern RATELIMIT_{prefix}_{field}, e.g.
// RATELIMIT_SUBJECT_REQUESTS and RATELIMIT_SUBJECT_WINDOW_SEC.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}

	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if windowSec, err := strconv.Atoi(val); err == nil && windowSec > 0 {
			config.Window = time.Duration(windowSec) * time.Second
			config.CounterTTL = config.Window + 10*time.Second
		}
	}

	return config
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes (e.g., authenticated subject or IP address).
type KeyExtractor func(*http.Request) string

// SubjectKeyExtractor keys the limiter by the authenticated user id. It
// returns empty string on unauthenticated paths.
func SubjectKeyExtractor(r *http.Request) string {
	if auth, ok := AuthFromContext(r.Context()); ok {
		return auth.UserID
	}
	return ""
}

// RateLimitMiddleware enforces a fixed-window cap per extracted key against
// a durable counter store. Counters survive process restarts and are shared
// across gateway instances pointing at the same store.
func RateLimitMiddleware(store CounterStore, config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			subject := keyExtractor(r)
			if subject == "" {
				// No identity to meter; the auth middleware ahead of us
				// rejects anonymous traffic, so this only happens on
				// misordered wiring.
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			window := now.UnixMilli() / config.Window.Milliseconds()
			key := subject + ":" + strconv.FormatInt(window, 10)

			count, err := store.Add(ctx, key, config.CounterTTL)
			if err != nil {
				log.Error("rate limit counter store failed", "key", key, "err", err)
				WriteError(w, http.StatusInternalServerError, ErrorCodeServer, "")
				return
			}

			if count > int64(config.RequestsPerWindow) {
				retryAfter := max(secondsToNextWindow(now, config.Window), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"subject", subject,
					"endpoint", r.URL.Path,
					"count", count,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// secondsToNextWindow rounds up so Retry-After never tells the client to
// come back inside the current window.
func secondsToNextWindow(now time.Time, window time.Duration) int {
	elapsedMs := now.UnixMilli() % window.Milliseconds()
	return int((window.Milliseconds() - elapsedMs + 999) / 1000)
}
