package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskboard/internal/core/kv"
	"github.com/hay-kot/taskboard/internal/core/kv/kvtest"
)

func TestKVStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.KV {
		return NewKVStore(filepath.Join(t.TempDir(), FileName))
	})
}

func TestKVStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", FileName)

	require.NoError(t, NewKVStore(path).Set(ctx, "tasks", []int{1, 2, 3}))

	var got []int
	require.NoError(t, NewKVStore(path).Get(ctx, "tasks", &got))
	assert.Equal(t, []int{1, 2, 3}, got)

	assert.NoFileExists(t, path+".tmp")
}

func TestKVStore_EmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	keys, err := NewKVStore(path).ListKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKVStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewKVStore(path)

	_, err := store.GetRaw(ctx, "tasks")
	require.ErrorIs(t, err, ErrCorruptFile)
	assert.NotErrorIs(t, err, kv.ErrNotFound)

	// A write replaces the corrupt file.
	require.NoError(t, store.Set(ctx, "tasks", []string{}))

	has, err := store.Has(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestKVStore_SetKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore(filepath.Join(t.TempDir(), FileName))

	require.NoError(t, store.Set(ctx, "k", 1))
	first, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "k", 2))
	second, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.JSONEq(t, "2", string(second.Value))
}

func TestKVStore_SeparateInstancesWriteConcurrently(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	// Two instances have separate locks, like a CLI call next to a running TUI.
	stores := []*KVStore{NewKVStore(path), NewKVStore(path)}

	var wg sync.WaitGroup
	for i, s := range stores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				assert.NoError(t, s.Set(ctx, "tasks", []int{i, n}))
			}
		}()
	}
	wg.Wait()

	var got []int
	require.NoError(t, NewKVStore(path).Get(ctx, "tasks", &got))
	require.Len(t, got, 2)
	assert.Equal(t, 19, got[1])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}
