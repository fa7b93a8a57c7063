package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fjod/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the snapshot store selected by cfg.CartStorage. The returned
// close function releases the backend's connections.
func Open(ctx context.Context, cfg *config.Config) (SnapshotStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CartStorage {
	case "memory":
		return NewMemoryStore(), noop, nil

	case "file":
		s, err := NewFileStore(cfg.CartFileDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedisStore(client, cfg.CartTTL), client.Close, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		s, err := NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cart storage %q", cfg.CartStorage)
	}
}
