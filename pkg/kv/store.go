// Package kv provides a generic thread-safe map used as an in-memory backing
// for key-value storage.
package kv

import "sync"

// Store is a thread-safe generic key-value map.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates an empty Store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Update replaces the value for key with the result of fn, which receives the
// current value and whether it existed. The read and write happen under one lock.
func (s *Store[K, V]) Update(key K, fn func(old V, ok bool) V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[key]
	s.data[key] = fn(old, ok)
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Keys returns all keys in the store in no particular order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
