// Package jsonfile implements kv.KV on a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/hay-kot/taskboard/internal/core/kv"
)

// FileName is the storage file created inside the data directory.
const FileName = "storage.json"

// ErrCorruptFile is returned (wrapped) by reads when the storage file cannot be
// parsed. Writes replace a corrupt file instead of failing.
var ErrCorruptFile = errors.New("storage file is corrupt")

// entry is the on-disk shape of one key.
type entry struct {
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// KVStore implements kv.KV using a JSON file for persistence. Every write
// rewrites the whole file atomically.
type KVStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a JSON file KV store at the given path. The file is
// created on first write.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *KVStore) Path() string {
	return s.path
}

// Get retrieves and deserializes a value by key.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	e, err := s.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(e.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value, replacing any previous one.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadForWrite()
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	now := s.now()
	e := entry{Value: data, CreatedAt: now, UpdatedAt: now}
	if prev, ok := file[key]; ok {
		e.CreatedAt = prev.CreatedAt
	}
	file[key] = e

	if err := s.save(file); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadForWrite()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	if _, ok := file[key]; !ok {
		return nil
	}
	delete(file, key)

	if err := s.save(file); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	_, ok := file[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	keys := make([]string, 0, len(file))
	for k := range file {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// GetRaw retrieves a raw KV entry with metadata.
func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	e, ok := file[key]
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	return kv.Entry{
		Key:       key,
		Value:     e.Value,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

// load reads the storage file from disk.
// Returns an empty map if the file doesn't exist.
func (s *KVStore) load() (map[string]entry, error) {
	file := make(map[string]entry)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFile, s.path, err)
	}

	return file, nil
}

// loadForWrite is load, except a corrupt file yields an empty map so the next
// save replaces it.
func (s *KVStore) loadForWrite() (map[string]entry, error) {
	file, err := s.load()
	if errors.Is(err, ErrCorruptFile) {
		return make(map[string]entry), nil
	}
	return file, err
}

// save writes the storage file to disk atomically. Each write goes through its
// own temp file so processes sharing the data directory never rename each
// other's partial output.
func (s *KVStore) save(file map[string]entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
