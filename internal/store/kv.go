package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV is the persistence adapter: one opaque value per string key.
type KV interface {
	// Get returns ok=false (and no error) when key has never been set.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Backends lists the accepted Config.Backend values.
var Backends = []string{BackendSQLite, BackendFile, BackendRedis, BackendPostgres}

type Config struct {
	Backend string

	// SQLitePath defaults to Store.SQLitePath().
	SQLitePath string
	// Dir is the file backend directory; defaults to Store.DataDir().
	Dir string

	RedisURL    string
	PostgresDSN string
}

// Open connects the configured backend. Local backends default their paths
// under s.Dir.
func Open(ctx context.Context, s Store, cfg Config) (KV, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendSQLite
	}
	switch backend {
	case BackendSQLite:
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			if err := s.Ensure(); err != nil {
				return nil, err
			}
			path = s.SQLitePath()
		}
		return OpenSQLite(ctx, path)
	case BackendFile:
		dir := strings.TrimSpace(cfg.Dir)
		if dir == "" {
			dir = s.DataDir()
		}
		kv, err := NewFileKV(dir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendRedis:
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return nil, errors.New("redis backend: storage.redis_url is empty")
		}
		kv, err := NewRedisKV(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("postgres backend: storage.postgres_dsn is empty")
		}
		return OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownBackend, cfg.Backend, strings.Join(Backends, ", "))
	}
}
