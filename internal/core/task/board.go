package task

import (
	"slices"
	"time"
)

// Hook is called after a mutation has committed, with the new task list.
type Hook func(tasks []Task)

// Board is the in-memory state store for the task list. Mutations replace the
// underlying slice, so lists returned by Tasks are never modified afterwards.
//
// Board is not safe for concurrent use; all calls are expected to come from a
// single event loop.
type Board struct {
	tasks  []Task
	lastID int64
	now    func() time.Time
	hooks  []Hook
}

// Option configures a Board.
type Option func(*Board)

// WithClock sets the time source used to derive task ids.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithHook registers a post-mutation hook.
func WithHook(h Hook) Option {
	return func(b *Board) {
		b.hooks = append(b.hooks, h)
	}
}

// NewBoard creates a Board seeded with tasks in their stored order.
func NewBoard(tasks []Task, opts ...Option) *Board {
	b := &Board{
		tasks: slices.Clone(tasks),
		now:   time.Now,
	}
	for _, t := range b.tasks {
		b.lastID = max(b.lastID, t.ID)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnChange registers a hook called after every successful mutation.
func (b *Board) OnChange(h Hook) {
	b.hooks = append(b.hooks, h)
}

// Tasks returns a copy of the task list in insertion order.
func (b *Board) Tasks() []Task {
	return slices.Clone(b.tasks)
}

// Len returns the number of tasks.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Get returns the task with the given id.
func (b *Board) Get(id int64) (Task, bool) {
	i := b.index(id)
	if i < 0 {
		return Task{}, false
	}
	return b.tasks[i], true
}

// Add appends a new pending task. Returns ErrEmptyText if text is blank.
func (b *Board) Add(text string) (Task, error) {
	text = NormalizeText(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	t := Task{
		ID:   b.nextID(),
		Text: text,
	}

	next := make([]Task, len(b.tasks), len(b.tasks)+1)
	copy(next, b.tasks)
	b.commit(append(next, t))

	return t, nil
}

// Remove deletes the task with the given id. It reports whether a task was
// removed; an unknown id is a no-op.
func (b *Board) Remove(id int64) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}

	b.commit(slices.Delete(slices.Clone(b.tasks), i, i+1))
	return true
}

// Toggle flips the completed flag of the task with the given id. It reports
// whether a task was changed; an unknown id is a no-op.
func (b *Board) Toggle(id int64) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}

	next := slices.Clone(b.tasks)
	next[i].Completed = !next[i].Completed
	b.commit(next)
	return true
}

func (b *Board) commit(next []Task) {
	b.tasks = next
	for _, h := range b.hooks {
		h(b.Tasks())
	}
}

// nextID derives an id from the clock, bumping past the last issued id when
// the clock has not advanced.
func (b *Board) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

func (b *Board) index(id int64) int {
	return slices.IndexFunc(b.tasks, func(t Task) bool { return t.ID == id })
}
