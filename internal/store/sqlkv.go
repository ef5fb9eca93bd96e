package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// dialect holds the statements that differ between sqlite and postgres.
type dialect struct {
	name    string
	migrate []string
	get     string
	upsert  string
}

var sqliteDialect = dialect{
	name: "sqlite",
	migrate: []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	},
	get: `SELECT v FROM kv WHERE k = ?`,
	upsert: `INSERT INTO kv (k, v, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
}

var postgresDialect = dialect{
	name: "postgres",
	migrate: []string{
		`CREATE TABLE IF NOT EXISTS quicknotes_kv (
			k TEXT PRIMARY KEY,
			v BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
	},
	get: `SELECT v FROM quicknotes_kv WHERE k = $1`,
	upsert: `INSERT INTO quicknotes_kv (k, v, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = EXCLUDED.updated_at`,
}

// sqlKV is a KV over a single two-column table.
type sqlKV struct {
	db  *sql.DB
	d   dialect
	now func() time.Time
}

func newSQLKV(db *sql.DB, d dialect) *sqlKV {
	return &sqlKV{db: db, d: d, now: time.Now}
}

func (s *sqlKV) migrate(ctx context.Context) error {
	for _, stmt := range s.d.migrate {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s migrate: %w", s.d.name, err)
		}
	}
	return nil
}

func (s *sqlKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s get %q: %w", s.d.name, key, err)
	}
	return v, true, nil
}

func (s *sqlKV) Set(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s set %q: %w", s.d.name, key, err)
	}
	defer func() { _ = tx.Rollback() }()

	updated := s.now().UTC()
	var stamp any = updated
	if s.d.name == sqliteDialect.name {
		stamp = updated.Format(time.RFC3339Nano)
	}
	if _, err := tx.ExecContext(ctx, s.d.upsert, key, value, stamp); err != nil {
		return fmt.Errorf("%s set %q: %w", s.d.name, key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s set %q: %w", s.d.name, key, err)
	}
	return nil
}

func (s *sqlKV) Close() error {
	return s.db.Close()
}
