package deskbook

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/mkaye/deskbook/internal/core/task"
)

// TaskService wraps task.Store with ID assignment and the status rules.
type TaskService struct {
	store task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store task.Store, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		log:   log.With().Str("component", "task-service").Logger(),
		now:   time.Now,
	}
}

// Now returns the service clock's current time. Views derive task
// statuses from it so they agree with what List would return.
func (s *TaskService) Now() time.Time {
	return s.now()
}

// Add creates a task with the next free ID.
func (s *TaskService) Add(ctx context.Context, description string, deadline *time.Time) (task.Task, error) {
	if err := criterio.Run("description", description, task.ValidateDescription); err != nil {
		return task.Task{}, err
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          task.NextID(tasks),
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
		Deadline:    deadline,
	}

	tasks = append(tasks, t)
	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Info().Int64("id", t.ID).Msg("task added")
	return t, nil
}

// List returns tasks filtered by derived status and ordered by the sort
// key. An empty status keeps everything; an empty key sorts by ID.
func (s *TaskService) List(ctx context.Context, status task.Status, key task.SortKey) ([]task.Task, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q: must be one of active, completed, overdue", status)
	}
	if key == "" {
		key = task.SortByID
	}
	if !key.IsValid() {
		return nil, fmt.Errorf("invalid sort key %q: must be one of id, created, deadline", key)
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	tasks = task.FilterStatus(tasks, status, s.now())
	task.Sort(tasks, key)
	return tasks, nil
}

// Get returns the task with the given ID.
func (s *TaskService) Get(ctx context.Context, id int64) (task.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	idx := indexByID(tasks, id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}
	return tasks[idx], nil
}

// Complete marks a task done. The second return reports whether the
// task changed; completing a completed task is a no-op.
func (s *TaskService) Complete(ctx context.Context, id int64) (task.Task, bool, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, false, err
	}

	idx := indexByID(tasks, id)
	if idx < 0 {
		return task.Task{}, false, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}
	if tasks[idx].Completed {
		return tasks[idx], false, nil
	}

	tasks[idx].Completed = true
	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, false, err
	}

	s.log.Info().Int64("id", id).Msg("task completed")
	return tasks[idx], true, nil
}

// TaskUpdate carries edits to a task. Zero values keep the current
// field; ClearDeadline removes the deadline and wins over Deadline.
type TaskUpdate struct {
	Description   string
	Deadline      *time.Time
	ClearDeadline bool
	Completed     *bool
}

// Update edits the task with the given ID.
func (s *TaskService) Update(ctx context.Context, id int64, upd TaskUpdate) (task.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	idx := indexByID(tasks, id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	next := tasks[idx]
	if upd.Description != "" {
		if err := criterio.Run("description", upd.Description, task.ValidateDescription); err != nil {
			return task.Task{}, err
		}
		next.Description = strings.TrimSpace(upd.Description)
	}
	switch {
	case upd.ClearDeadline:
		next.Deadline = nil
	case upd.Deadline != nil:
		next.Deadline = upd.Deadline
	}
	if upd.Completed != nil {
		next.Completed = *upd.Completed
	}

	tasks[idx] = next
	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Info().Int64("id", id).Msg("task updated")
	return next, nil
}

// Remove deletes the task with the given ID and returns it.
func (s *TaskService) Remove(ctx context.Context, id int64) (task.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	idx := indexByID(tasks, id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	removed := tasks[idx]
	tasks = slices.Delete(tasks, idx, idx+1)

	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Info().Int64("id", id).Msg("task removed")
	return removed, nil
}

// ClearCompleted removes every completed task and reports how many were
// dropped. Clearing an already clean list is not an error.
func (s *TaskService) ClearCompleted(ctx context.Context) (int, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return 0, err
	}

	s.log.Info().Int("removed", removed).Msg("cleared completed tasks")
	return removed, nil
}

func indexByID(tasks []task.Task, id int64) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool {
		return t.ID == id
	})
}
