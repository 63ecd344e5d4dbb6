package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Issuer claim stamped on and required of session tokens
	Audience string // Optional: audience claim, enforced when set

	SessionSecretName string        // Secret name holding the HS256 signing key (default: SESSION_SECRET)
	SessionTTL        time.Duration // Lifetime of minted session tokens (default: 15m)

	IdentityEndpoint string // Required for /v1/auth/session: refresh-token verification URL
	IdentityAPIKey   string // Optional: bearer credential for the identity endpoint

	StoreBackend string // Counter/cache backend (sqlite, redis) (default: sqlite)
	DatabaseFile string // Optional: path to SQLite database file (default: ./gateway.db)
	RedisAddr    string // Optional: redis address (default: localhost:6379)

	R2AccountID     string        // Cloudflare account ID for the R2 S3 endpoint
	R2Bucket        string        // Bucket all object routes operate on
	R2AccessKeyID   string        // S3 credential pair for uploads and presigning
	R2SecretKey     string        //
	R2Region        string        // Signing region (default: auto)
	SignedURLExpiry time.Duration // Presigned PUT validity (default: 10m)

	OpenAIKey         string // Optional: enables the openai provider
	AnthropicKey      string // Optional: enables the anthropic provider
	WorkersAIToken    string // Optional: enables the workers-ai provider (uses R2AccountID's account)
	DefaultAIProvider string // Optional: provider used when a request names none
	AICacheTTL        time.Duration // Cached inference response lifetime (default: 1h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired counter/cache purge interval (default: 10m)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:   getEnvOrDefault("GATEWAY_ISSUER", "edgegate"),
		Audience: os.Getenv("GATEWAY_AUDIENCE"), // Optional

		SessionSecretName: getEnvOrDefault("SESSION_SECRET_NAME", "SESSION_SECRET"),
		SessionTTL:        getEnvDurationOrDefault("SESSION_TTL", 15*time.Minute),

		IdentityEndpoint: os.Getenv("IDENTITY_ENDPOINT"),
		IdentityAPIKey:   os.Getenv("IDENTITY_API_KEY"), // Optional

		StoreBackend: getEnvOrDefault("STORE_BACKEND", "sqlite"),
		DatabaseFile: getEnvOrDefault("GATEWAY_DATABASE_FILE", "gateway.db"),
		RedisAddr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),

		R2AccountID:     os.Getenv("R2_ACCOUNT_ID"),
		R2Bucket:        os.Getenv("R2_BUCKET"),
		R2AccessKeyID:   os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Region:        getEnvOrDefault("R2_REGION", "auto"),
		SignedURLExpiry: getEnvDurationOrDefault("SIGNED_URL_EXPIRY", 10*time.Minute),

		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		WorkersAIToken:    os.Getenv("WORKERS_AI_TOKEN"),
		DefaultAIProvider: os.Getenv("AI_DEFAULT_PROVIDER"), // Optional: first configured wins otherwise
		AICacheTTL:        getEnvDurationOrDefault("AI_CACHE_TTL", 1*time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
