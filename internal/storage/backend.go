// Package storage persists application state as whole JSON values under
// fixed keys, the way a browser's local storage would.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Keys of the persisted layout
const (
	KeyTasks            = "tasks"
	KeyCustomCategories = "customCategories"
	KeyViewMode         = "viewMode"
)

// ErrInvalidKey is returned for keys that cannot be stored safely
var ErrInvalidKey = errors.New("invalid storage key")

// Backend is a synchronous key-value store holding raw JSON text.
// Get reports ok=false when nothing is stored under key.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
