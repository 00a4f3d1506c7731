// Package validate provides shared validation functions.
package validate

import (
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/taskboard/internal/core/task"
)

// TaskText validates that task text is non-empty after trimming whitespace.
func TaskText(text string) error {
	if task.NormalizeText(text) == "" {
		return errors.New(task.EmptyTextAlert)
	}
	return nil
}

// TaskTextField returns a criterio validator for task text.
func TaskTextField(field, text string) error {
	return criterio.Run(field, text, TaskText)
}
