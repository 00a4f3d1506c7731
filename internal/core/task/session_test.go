package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Defaults(t *testing.T) {
	s := NewSession(NewBoard(nil))
	assert.Equal(t, ViewState{Filter: FilterAll, Sort: SortDefault}, s.View)
}

func TestSession_AddClearsInput(t *testing.T) {
	s := NewSession(NewBoard(nil))

	require.NoError(t, s.Dispatch(InputChanged{Text: "  Buy milk "}))
	assert.Equal(t, "  Buy milk ", s.View.Input)

	require.NoError(t, s.Dispatch(AddRequested{}))
	assert.Empty(t, s.View.Input)
	assert.Equal(t, []string{"Buy milk"}, texts(s.Board.Tasks()))
}

func TestSession_AddEmptyAlerts(t *testing.T) {
	s := NewSession(NewBoard(nil))

	require.NoError(t, s.Dispatch(InputChanged{Text: "   "}))
	err := s.Dispatch(AddRequested{})
	require.ErrorIs(t, err, ErrEmptyText)

	msg, ok := AlertMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Task cannot be empty", msg)

	assert.Equal(t, "   ", s.View.Input, "input is kept on failure")
	assert.Equal(t, 0, s.Board.Len())
}

func TestSession_ViewChangesDoNotTouchBoard(t *testing.T) {
	calls := 0
	s := NewSession(NewBoard([]Task{{ID: 1, Text: "a"}}, WithHook(func([]Task) { calls++ })))

	require.NoError(t, s.Dispatch(FilterChanged{Filter: FilterCompleted}))
	require.NoError(t, s.Dispatch(SortChanged{Sort: SortZA}))
	require.NoError(t, s.Dispatch(InputChanged{Text: "draft"}))

	assert.Equal(t, FilterCompleted, s.View.Filter)
	assert.Equal(t, SortZA, s.View.Sort)
	assert.Equal(t, 0, calls)
	assert.Empty(t, s.Displayed())
}

func TestSession_ToggleAndDelete(t *testing.T) {
	s := NewSession(NewBoard([]Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}))

	require.NoError(t, s.Dispatch(ToggleRequested{ID: 1}))
	require.NoError(t, s.Dispatch(DeleteRequested{ID: 2}))
	require.NoError(t, s.Dispatch(DeleteRequested{ID: 2}))

	assert.Equal(t, []Task{{ID: 1, Text: "a", Completed: true}}, s.Board.Tasks())
}

func TestAlertMessage_OtherErrors(t *testing.T) {
	_, ok := AlertMessage(ErrCorrupt)
	assert.False(t, ok)

	_, ok = AlertMessage(nil)
	assert.False(t, ok)
}
