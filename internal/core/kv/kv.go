// Package kv defines the persistent key-value store the task list lives in.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) by Get and GetRaw when a key does not exist.
var ErrNotFound = errors.New("kv key not found")

// Entry represents a raw KV entry with metadata.
type Entry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// KV is the interface for a persistent key-value store.
// Keys are strings, values are JSON-serializable. Set replaces any prior value
// (last write wins).
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
	GetRaw(ctx context.Context, key string) (Entry, error)
}
