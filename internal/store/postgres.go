package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects through the pgx database/sql driver and ensures the
// quicknotes_kv table exists.
func OpenPostgres(ctx context.Context, dsn string) (KV, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	kv := newSQLKV(db, postgresDialect)
	if err := kv.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}
