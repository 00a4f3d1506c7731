package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/hay-kot/taskboard/pkg/kv"
)

// Memory is a process-local KV. Nothing it holds survives the process.
type Memory struct {
	data *kv.Store[string, Entry]
	now  func() time.Time
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{
		data: kv.New[string, Entry](),
		now:  time.Now,
	}
}

// Get retrieves and deserializes a value by key.
func (m *Memory) Get(ctx context.Context, key string, dest any) error {
	entry, err := m.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value, replacing any previous one.
func (m *Memory) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	now := m.now()
	m.data.Update(key, func(prev Entry, ok bool) Entry {
		entry := Entry{Key: key, Value: data, CreatedAt: now, UpdatedAt: now}
		if ok {
			entry.CreatedAt = prev.CreatedAt
		}
		return entry
	})
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (m *Memory) Has(ctx context.Context, key string) (bool, error) {
	_, ok := m.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (m *Memory) ListKeys(ctx context.Context) ([]string, error) {
	keys := m.data.Keys()
	slices.Sort(keys)
	return keys, nil
}

// GetRaw retrieves a raw KV entry with metadata.
func (m *Memory) GetRaw(ctx context.Context, key string) (Entry, error) {
	entry, ok := m.data.Get(key)
	if !ok {
		return Entry{}, fmt.Errorf("kv get %q: %w", key, ErrNotFound)
	}
	return entry, nil
}
