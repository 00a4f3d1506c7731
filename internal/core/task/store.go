package task

import (
	"context"
	"errors"
)

// ErrCorrupt is returned by a Store when the persisted value cannot be decoded
// into a valid task list.
var ErrCorrupt = errors.New("persisted task list is corrupt")

// Store defines the interface for task list persistence.
type Store interface {
	// Load returns the persisted task list in stored order.
	// A missing value returns an empty list and no error.
	Load(ctx context.Context) ([]Task, error)

	// Save replaces the persisted task list.
	Save(ctx context.Context, tasks []Task) error
}
