// Package redis backs the gateway store with Redis. Counters use the
// server-side atomic INCR, which is the preferred backend when several
// gateway instances share one rate-limit budget.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	"github.com/go-redis/redis/v8"
)

type Store struct {
	client    *redis.Client
	keyPrefix string
}

func NewStore(ctx context.Context, addr, keyPrefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		ReadTimeout: 20 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Store{client: client, keyPrefix: keyPrefix}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ApplyMigrations is a no-op; redis has no schema.
func (s *Store) ApplyMigrations() error { return nil }

// PurgeExpired is a no-op; redis expires keys natively.
func (s *Store) PurgeExpired(context.Context) error { return nil }

func (s *Store) Counters() store.Counters { return &countersRepo{s} }
func (s *Store) Cache() store.Cache       { return &cacheRepo{s} }

func (s *Store) key(k string) string { return s.keyPrefix + k }

type countersRepo struct {
	s *Store
}

// Add relies on INCR being atomic server-side. The TTL is attached on the
// first increment of a key; losing the race to set it is harmless because
// every writer uses the same ttl.
func (r *countersRepo) Add(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	full := r.s.key(key)

	count, err := r.s.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.s.client.Expire(ctx, full, ttl).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (r *countersRepo) Get(ctx context.Context, key string) (int64, error) {
	count, err := r.s.client.Get(ctx, r.s.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

type cacheRepo struct {
	s *Store
}

func (r *cacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.s.client.Get(ctx, r.s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *cacheRepo) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.s.client.Set(ctx, r.s.key(key), value, ttl).Err()
}
