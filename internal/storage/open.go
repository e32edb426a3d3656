package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peregrinno/todo/internal/config"
)

// Open builds the backend selected by cfg. The caller closes it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		backend Backend
		err     error
	)

	switch cfg.Storage.Backend {
	case config.BackendFile:
		backend, err = NewFileBackend(cfg.Storage.Dir)
	case config.BackendSQLite:
		backend, err = OpenSQLite(cfg.ResolvedSQLitePath())
	case config.BackendRedis:
		backend, err = openRedis(ctx, cfg.Storage.Redis)
	case config.BackendMemory:
		backend = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("storage backend ready", "backend", backend.Name())
	return backend, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (Backend, error) {
	client, err := DialRedis(cfg.Addr)
	if err != nil {
		return nil, err
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisBackend(client, cfg.Prefix), nil
}
