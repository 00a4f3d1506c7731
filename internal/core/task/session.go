package task

// ViewState is the session-only UI state. It is never persisted.
type ViewState struct {
	Input  string
	Filter Filter
	Sort   Sort
}

// Event is a user action handled by Session.Dispatch.
type Event interface {
	event()
}

type (
	// InputChanged replaces the pending input text.
	InputChanged struct{ Text string }
	// AddRequested adds the pending input as a new task.
	AddRequested struct{}
	// DeleteRequested removes a task.
	DeleteRequested struct{ ID int64 }
	// ToggleRequested flips a task's completed flag.
	ToggleRequested struct{ ID int64 }
	// FilterChanged selects a new filter.
	FilterChanged struct{ Filter Filter }
	// SortChanged selects a new sort order.
	SortChanged struct{ Sort Sort }
)

func (InputChanged) event()    {}
func (AddRequested) event()    {}
func (DeleteRequested) event() {}
func (ToggleRequested) event() {}
func (FilterChanged) event()   {}
func (SortChanged) event()     {}

// Session pairs the durable Board with the ephemeral view state of one UI.
type Session struct {
	Board *Board
	View  ViewState
}

// NewSession creates a Session with the default filter and sort.
func NewSession(board *Board) *Session {
	return &Session{
		Board: board,
		View: ViewState{
			Filter: FilterAll,
			Sort:   SortDefault,
		},
	}
}

// Dispatch applies ev. The only error returned is ErrEmptyText from
// AddRequested, in which case nothing changed.
func (s *Session) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case InputChanged:
		s.View.Input = ev.Text
	case AddRequested:
		if _, err := s.Board.Add(s.View.Input); err != nil {
			return err
		}
		s.View.Input = ""
	case DeleteRequested:
		s.Board.Remove(ev.ID)
	case ToggleRequested:
		s.Board.Toggle(ev.ID)
	case FilterChanged:
		s.View.Filter = ev.Filter
	case SortChanged:
		s.View.Sort = ev.Sort
	}
	return nil
}

// Displayed returns the projection of the board under the current view state.
func (s *Session) Displayed() []Task {
	return Project(s.Board.Tasks(), s.View.Filter, s.View.Sort)
}
