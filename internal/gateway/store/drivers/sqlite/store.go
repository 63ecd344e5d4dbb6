package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer at a time keeps the counter upsert serialised; sqlite
	// would lock anyway, this just avoids busy churn.
	db.SetMaxOpenConns(1)

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Counters() store.Counters { return &countersRepo{db: s.db} }
func (s *Store) Cache() store.Cache       { return &cacheRepo{db: s.db} }

// PurgeExpired drops lapsed counters and cache entries. Reads already treat
// expired rows as absent; this keeps the file from growing unboundedly.
func (s *Store) PurgeExpired(ctx context.Context) error {
	nowMs := nowUnixMilli()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM rate_counters WHERE expires_at <= ?`, nowMs); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM response_cache WHERE expires_at <= ?`, nowMs)
	return err
}
