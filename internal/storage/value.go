package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/peregrinno/todo/internal/domain"
)

// Value is a typed, JSON-encoded value persisted under one key. Reads are
// served from an in-memory mirror; every Set rewrites the whole value.
type Value[T any] struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	current T
	logger  *slog.Logger
}

// Load reads key from backend. Absent, unreadable or malformed data yields
// def; the failure is logged and never returned.
func Load[T any](ctx context.Context, backend Backend, key string, def T, logger *slog.Logger) *Value[T] {
	if logger == nil {
		logger = slog.Default()
	}

	v := &Value[T]{
		backend: backend,
		key:     key,
		current: def,
		logger:  logger,
	}

	data, ok, err := backend.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("failed to read stored value, using default",
			"key", key, "backend", backend.Name(), "error", err)
	case !ok:
		logger.Debug("no stored value, using default", "key", key, "backend", backend.Name())
	default:
		var decoded T
		if err := json.Unmarshal(data, &decoded); err != nil {
			logger.Warn("stored value is malformed, using default",
				"key", key, "backend", backend.Name(), "error", err)
		} else {
			v.current = decoded
		}
	}

	return v
}

// LoadValidated is Load followed by a check of the decoded value. A value
// rejected by valid is replaced by def, as if it were malformed.
func LoadValidated[T any](ctx context.Context, backend Backend, key string, def T, valid func(T) bool, logger *slog.Logger) *Value[T] {
	v := Load(ctx, backend, key, def, logger)
	if !valid(v.current) {
		v.logger.Warn("stored value is invalid, using default",
			"key", key, "backend", backend.Name(), "value", v.current)
		v.current = def
	}
	return v
}

// Key returns the storage key
func (v *Value[T]) Key() string { return v.key }

// Get returns the in-memory mirror
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Reset replaces the mirror without writing to the backend
func (v *Value[T]) Reset(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = value
}

// Set replaces the mirror and writes the full value before returning. On a
// write failure the mirror keeps the new value and a *domain.StorageError
// is returned.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = value

	data, err := json.Marshal(value)
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: v.key, Backend: v.backend.Name(), Err: err}
	}

	if err := v.backend.Set(ctx, v.key, data); err != nil {
		v.logger.Error("failed to persist value",
			"key", v.key, "backend", v.backend.Name(), "error", err)
		return &domain.StorageError{Op: "write", Key: v.key, Backend: v.backend.Name(), Err: err}
	}
	return nil
}
