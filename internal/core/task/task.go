// Package task defines the task list domain: the Task model, the in-memory
// Board that owns the ordered list, the view projection used for display and
// the event handlers that drive both from a UI.
package task

import (
	"errors"
	"strings"
)

// StorageKey is the key the task list is persisted under.
const StorageKey = "tasks"

// EmptyTextAlert is the message shown to the user when a blank task is submitted.
const EmptyTextAlert = "Task cannot be empty"

// ErrEmptyText is returned when a task is added with empty or whitespace-only text.
var ErrEmptyText = errors.New("task text is empty")

// Task is a single to-do entry.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NormalizeText trims surrounding whitespace from task text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// AlertMessage returns the user-facing alert for err, if err is one the UI
// reports with a blocking alert.
func AlertMessage(err error) (string, bool) {
	if errors.Is(err, ErrEmptyText) {
		return EmptyTextAlert, true
	}
	return "", false
}
