package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskboard/internal/core/kv"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/data/stores"
)

// failingStore fails every write and optionally every read.
type failingStore struct {
	failLoad bool
	saves    int
}

func (f *failingStore) Load(context.Context) ([]task.Task, error) {
	if f.failLoad {
		return nil, errors.New("disk on fire")
	}
	return nil, nil
}

func (f *failingStore) Save(context.Context, []task.Task) error {
	f.saves++
	return errors.New("quota exceeded")
}

func TestBridge_EndToEnd(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	bridge := task.NewBridge(stores.NewTaskStore(backend), zerolog.Nop())

	s := task.NewSession(bridge.Open(ctx))
	require.Equal(t, 0, s.Board.Len())

	require.NoError(t, s.Dispatch(task.InputChanged{Text: "Buy milk"}))
	require.NoError(t, s.Dispatch(task.AddRequested{}))
	require.NoError(t, s.Dispatch(task.InputChanged{Text: "Walk dog"}))
	require.NoError(t, s.Dispatch(task.AddRequested{}))

	milk := s.Board.Tasks()[0]
	require.NoError(t, s.Dispatch(task.ToggleRequested{ID: milk.ID}))
	require.NoError(t, s.Dispatch(task.FilterChanged{Filter: task.FilterPending}))

	displayed := s.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "Walk dog", displayed[0].Text)

	// A new session over the same storage sees the persisted list, but not the
	// previous view state.
	reopened := task.NewSession(bridge.Open(ctx))
	assert.Equal(t, s.Board.Tasks(), reopened.Board.Tasks())
	assert.Equal(t, task.FilterAll, reopened.View.Filter)
}

func TestBridge_EmptyAddDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	bridge := task.NewBridge(stores.NewTaskStore(backend), zerolog.Nop())
	board := bridge.Open(ctx)

	_, err := board.Add("   ")
	require.ErrorIs(t, err, task.ErrEmptyText)

	has, err := backend.Has(ctx, task.StorageKey)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBridge_CorruptStorageStartsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	require.NoError(t, backend.Set(ctx, task.StorageKey, "not a list"))

	board := task.NewBridge(stores.NewTaskStore(backend), zerolog.Nop()).Open(ctx)
	assert.Equal(t, 0, board.Len())

	// The next mutation replaces the corrupt value.
	_, err := board.Add("fresh start")
	require.NoError(t, err)

	var stored []task.Task
	require.NoError(t, backend.Get(ctx, task.StorageKey, &stored))
	assert.Equal(t, board.Tasks(), stored)
}

func TestBridge_LoadFailureStartsEmpty(t *testing.T) {
	board := task.NewBridge(&failingStore{failLoad: true}, zerolog.Nop()).Open(context.Background())
	assert.Equal(t, 0, board.Len())
}

func TestBridge_WriteFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{}
	board := task.NewBridge(store, zerolog.Nop()).Open(context.Background())

	tk, err := board.Add("still here")
	require.NoError(t, err)
	board.Toggle(tk.ID)

	assert.Equal(t, 2, store.saves)
	got, ok := board.Get(tk.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
}
