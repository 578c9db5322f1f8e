package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// KVStore is a durable string-keyed store of serialized values.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// UpdatedAt reports when key was last written, nil when unknown.
	UpdatedAt(ctx context.Context, key string) (*time.Time, error)
}
