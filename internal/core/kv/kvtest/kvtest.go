// Package kvtest provides a conformance suite for kv.KV implementations.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskboard/internal/core/kv"
)

// Run exercises the kv.KV contract against stores built by newStore.
// Each subtest receives a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) kv.KV) {
	t.Helper()

	t.Run("SetAndGet", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		type payload struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}

		require.NoError(t, store.Set(ctx, "test-key", payload{Name: "hello", Value: 42}))

		var got payload
		require.NoError(t, store.Get(ctx, "test-key", &got))
		assert.Equal(t, "hello", got.Name)
		assert.Equal(t, 42, got.Value)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		store := newStore(t)

		var v string
		err := store.Get(context.Background(), "nonexistent", &v)
		require.ErrorIs(t, err, kv.ErrNotFound)

		_, err = store.GetRaw(context.Background(), "nonexistent")
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("SetOverwrite", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Set(ctx, "key", "first"))
		require.NoError(t, store.Set(ctx, "key", "second"))

		var got string
		require.NoError(t, store.Get(ctx, "key", &got))
		assert.Equal(t, "second", got)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Set(ctx, "key", "value"))
		require.NoError(t, store.Delete(ctx, "key"))
		require.NoError(t, store.Delete(ctx, "key"))

		has, err := store.Has(ctx, "key")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("Has", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		has, err := store.Has(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, store.Set(ctx, "exists", true))
		has, err = store.Has(ctx, "exists")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("ListKeys", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Set(ctx, "b", 1))
		require.NoError(t, store.Set(ctx, "a", 2))
		require.NoError(t, store.Set(ctx, "c", 3))

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("GetRaw", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Set(ctx, "raw-test", map[string]int{"x": 1}))

		entry, err := store.GetRaw(ctx, "raw-test")
		require.NoError(t, err)
		assert.Equal(t, "raw-test", entry.Key)
		assert.JSONEq(t, `{"x":1}`, string(entry.Value))
		assert.False(t, entry.CreatedAt.IsZero())
		assert.False(t, entry.UpdatedAt.IsZero())
	})
}
