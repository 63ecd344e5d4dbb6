// Package store defines the durable key-value capabilities the gateway
// depends on: rate-limit counters with per-key TTL and a small response
// cache. Concrete drivers (sqlite, redis) implement this.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface.
type Store interface {
	Counters() Counters
	Cache() Cache

	// ApplyMigrations brings the schema up to date. Drivers without a
	// schema implement it as a no-op.
	ApplyMigrations() error

	// PurgeExpired removes entries whose TTL has lapsed. Drivers whose
	// backend expires keys natively implement it as a no-op.
	PurgeExpired(ctx context.Context) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Counters are durable fixed-window rate-limit counters.
type Counters interface {
	// Add atomically increments the counter at key and returns the new
	// value. The ttl applies from the first write of a key; a key whose
	// ttl has lapsed restarts at 1. Atomicity is what lets concurrent
	// gateway instances share one counter without a check-then-act race.
	Add(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Get returns the current count, or 0 for an absent or expired key.
	Get(ctx context.Context, key string) (int64, error)
}

// Cache stores opaque payloads with a TTL. Used for AI response caching.
type Cache interface {
	// Get returns the cached value or ErrNotFound when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key for ttl.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
