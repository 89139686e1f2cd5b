package textfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mkaye/deskbook/internal/core/task"
)

// TaskStore persists the to-do list, one task per line:
// id,description,completed,created,deadline. Timestamps are RFC 3339;
// the deadline field is empty for undated tasks.
type TaskStore struct {
	fs   afero.Fs
	path string
	log  zerolog.Logger
	mu   sync.RWMutex
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a task store backed by the given file.
func NewTaskStore(fs afero.Fs, path string, log zerolog.Logger) *TaskStore {
	return &TaskStore{
		fs:   fs,
		path: path,
		log:  log.With().Str("component", "taskstore").Logger(),
	}
}

// Load reads all tasks in file order.
func (s *TaskStore) Load(ctx context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := readRecords(s.fs, s.path, s.log)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	for _, rec := range records {
		t, err := decodeTask(rec.fields)
		if err != nil {
			s.log.Warn().Str("path", s.path).Int("line", rec.line).Err(err).Msg("skipping malformed task")
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save replaces the stored task list atomically.
func (s *TaskStore) Save(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, encodeTask(t))
	}

	if err := writeRecords(s.fs, s.path, records); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func encodeTask(t task.Task) []string {
	deadline := ""
	if t.Deadline != nil {
		deadline = t.Deadline.Format(time.RFC3339Nano)
	}
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Description,
		strconv.FormatBool(t.Completed),
		t.CreatedAt.Format(time.RFC3339Nano),
		deadline,
	}
}

func decodeTask(fields []string) (task.Task, error) {
	if len(fields) != 5 {
		return task.Task{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid id %q", fields[0])
	}
	if id < 1 {
		return task.Task{}, fmt.Errorf("invalid id %d: must be positive", id)
	}

	description := strings.TrimSpace(fields[1])
	if description == "" {
		return task.Task{}, fmt.Errorf("description cannot be empty")
	}

	completed, err := strconv.ParseBool(strings.TrimSpace(fields[2]))
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid completed flag %q", fields[2])
	}

	created, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(fields[3]))
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid created time %q", fields[3])
	}

	t := task.Task{
		ID:          id,
		Description: description,
		Completed:   completed,
		CreatedAt:   created,
	}

	if raw := strings.TrimSpace(fields[4]); raw != "" {
		deadline, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return task.Task{}, fmt.Errorf("invalid deadline %q", fields[4])
		}
		t.Deadline = &deadline
	}

	return t, nil
}
