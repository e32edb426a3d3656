package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peregrinno/todo/internal/app"
	"github.com/peregrinno/todo/internal/config"
	"github.com/peregrinno/todo/internal/storage"
	"github.com/peregrinno/todo/internal/store"
)

// openSession opens the configured backend for dataDir and loads both stores.
// A dataDir other than the configured one also drops any explicit SQLite
// path so the database follows the directory.
func openSession(ctx context.Context, cfg *config.Config, dataDir string, logger *slog.Logger) (*app.Session, error) {
	c := *cfg
	if dataDir != "" && dataDir != cfg.Storage.Dir {
		c.Storage.Dir = dataDir
		c.Storage.SQLitePath = ""
	}

	backend, err := storage.Open(ctx, &c, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", c.Storage.Backend, err)
	}

	tasks := store.NewTaskStore(ctx, backend, store.WithLogger(logger))
	categories := store.NewCategoryStore(ctx, backend, store.WithLogger(logger))
	logger.Info("session opened", "dir", c.Storage.Dir, "tasks", len(tasks.List()), "categories", len(categories.List()))

	return &app.Session{
		Tasks:      tasks,
		Categories: categories,
		DataDir:    c.Storage.Dir,
		Close:      backend.Close,
	}, nil
}

// switchable reports whether the backend keeps data per directory,
// which is what workspace switching relies on
func switchable(cfg *config.Config) bool {
	return cfg.Storage.Backend == config.BackendFile || cfg.Storage.Backend == config.BackendSQLite
}

// newLogger writes text logs to the configured log file. When the file
// cannot be opened, warnings go to stderr instead.
func newLogger(cfg *config.Config, stderr io.Writer) (*slog.Logger, func() error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Log.Level))); err != nil {
		level = slog.LevelInfo
	}

	path := cfg.ResolvedLogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
			return logger, f.Close
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger.Warn("could not open log file, logging to stderr", "path", path)
	return logger, func() error { return nil }
}
