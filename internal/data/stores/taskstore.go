package stores

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hay-kot/taskboard/internal/core/kv"
	"github.com/hay-kot/taskboard/internal/core/task"
)

//go:embed schema/tasks.schema.json
var taskSchemaJSON string

const taskSchemaURL = "tasks.schema.json"

var taskSchema = jsonschema.MustCompileString(taskSchemaURL, taskSchemaJSON)

// TaskStore implements task.Store on top of a kv.KV, keeping the whole list
// as a JSON array under task.StorageKey.
type TaskStore struct {
	kv kv.KV
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore over store.
func NewTaskStore(store kv.KV) *TaskStore {
	return &TaskStore{kv: store}
}

// Load returns the persisted list. A missing key yields an empty list. Values
// that fail to parse, fail schema validation or repeat an id return an error
// wrapping task.ErrCorrupt.
func (s *TaskStore) Load(ctx context.Context) ([]task.Task, error) {
	entry, err := s.kv.GetRaw(ctx, task.StorageKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	return DecodeTasks(entry.Value)
}

// Save replaces the persisted list.
func (s *TaskStore) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := s.kv.Set(ctx, task.StorageKey, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// DecodeTasks parses and validates a serialized task list.
func DecodeTasks(data []byte) ([]task.Task, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrCorrupt, err)
	}

	if err := taskSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrCorrupt, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", task.ErrCorrupt, err)
	}

	seen := make(map[int64]struct{}, len(tasks))
	for i := range tasks {
		if _, dup := seen[tasks[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", task.ErrCorrupt, tasks[i].ID)
		}
		seen[tasks[i].ID] = struct{}{}
		tasks[i].Text = task.NormalizeText(tasks[i].Text)
	}

	return tasks, nil
}
