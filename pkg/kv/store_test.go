package kv

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("key", "value")

	s.Delete("key")

	_, ok := s.Get("key")
	assert.False(t, ok)

	// deleting again is harmless
	s.Delete("key")
}

func TestStore_Update(t *testing.T) {
	s := New[string, int]()

	s.Update("n", func(old int, ok bool) int {
		assert.False(t, ok)
		return old + 1
	})
	s.Update("n", func(old int, ok bool) int {
		assert.True(t, ok)
		return old + 1
	})

	val, _ := s.Get("n")
	assert.Equal(t, 2, val)
}

func TestStore_Keys(t *testing.T) {
	s := New[string, bool]()
	s.Set("b", true)
	s.Set("a", true)

	keys := s.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStore_ConcurrentUpdate(t *testing.T) {
	s := New[string, int]()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("count", func(old int, _ bool) int { return old + 1 })
		}()
	}
	wg.Wait()

	val, _ := s.Get("count")
	assert.Equal(t, 50, val)
}
