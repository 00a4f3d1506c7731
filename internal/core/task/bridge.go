package task

import (
	"context"

	"github.com/rs/zerolog"
)

// Bridge synchronizes a Board with a Store. Reads happen once at startup and
// every committed mutation is written back. Storage failures never reach the
// caller; they are logged and the in-memory state stays authoritative.
type Bridge struct {
	store Store
	log   zerolog.Logger
}

// NewBridge creates a Bridge over store.
func NewBridge(store Store, log zerolog.Logger) *Bridge {
	return &Bridge{
		store: store,
		log:   log.With().Str("cmp", "task-bridge").Logger(),
	}
}

// Load reads the persisted list. A missing or unreadable value yields an
// empty list.
func (br *Bridge) Load(ctx context.Context) []Task {
	tasks, err := br.store.Load(ctx)
	if err != nil {
		br.log.Warn().Ctx(ctx).Err(err).Msg("discarding unreadable task list")
		return []Task{}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks
}

// Save writes tasks to the store, logging any failure.
func (br *Bridge) Save(ctx context.Context, tasks []Task) {
	if err := br.store.Save(ctx, tasks); err != nil {
		br.log.Warn().Ctx(ctx).Err(err).Int("count", len(tasks)).Msg("failed to persist task list")
		return
	}
	br.log.Debug().Ctx(ctx).Int("count", len(tasks)).Msg("persisted task list")
}

// Open initializes a Board from the persisted list and installs a hook that
// writes the list back after every mutation.
func (br *Bridge) Open(ctx context.Context, opts ...Option) *Board {
	opts = append(opts, WithHook(func(tasks []Task) {
		br.Save(ctx, tasks)
	}))
	return NewBoard(br.Load(ctx), opts...)
}
