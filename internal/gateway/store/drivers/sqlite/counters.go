package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type countersRepo struct {
	db *sql.DB
}

func nowUnixMilli() int64 { return time.Now().UnixMilli() }

// Add increments the counter at key, resurrecting expired rows at 1. The
// upsert runs as a single statement, so concurrent callers cannot interleave
// a read between the check and the write.
func (r *countersRepo) Add(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	now := nowUnixMilli()
	expires := now + ttl.Milliseconds()

	var count int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO rate_counters (key, count, expires_at)
		VALUES (?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			count      = CASE WHEN rate_counters.expires_at <= ? THEN 1 ELSE rate_counters.count + 1 END,
			expires_at = CASE WHEN rate_counters.expires_at <= ? THEN ? ELSE rate_counters.expires_at END
		RETURNING count`,
		key, expires, now, now, expires,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Get returns the live count for key, treating expired rows as absent.
func (r *countersRepo) Get(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count FROM rate_counters WHERE key = ? AND expires_at > ?`,
		key, nowUnixMilli(),
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
