package task

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Store loads and persists the whole task list. Implementations replace
// the stored set atomically on Save.
type Store interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}
