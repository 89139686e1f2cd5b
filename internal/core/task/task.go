// Package task provides the domain types for to-do list items.
package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Status is the derived state of a task. It is never stored; only the
// completion flag persists and the rest follows from the clock.
type Status string

// Supported task statuses.
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// IsValid checks if the status is a supported value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOverdue:
		return true
	default:
		return false
	}
}

// Deadline input layouts. A date without a time means midnight local.
const (
	DeadlineLayout     = "2006-01-02 15:04"
	DeadlineDateLayout = "2006-01-02"
)

// Task is a single to-do item. Deadline is optional.
type Task struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// StatusAt derives the task's status at the given instant. Completion
// always wins; an incomplete task is overdue once the instant is past
// its deadline.
func (t Task) StatusAt(now time.Time) Status {
	switch {
	case t.Completed:
		return StatusCompleted
	case t.Deadline != nil && now.After(*t.Deadline):
		return StatusOverdue
	default:
		return StatusActive
	}
}

// Due summarizes the deadline relative to now, e.g. "2 days left" or
// "3 hours overdue".
func (t Task) Due(now time.Time) string {
	if t.Deadline == nil {
		return "no deadline"
	}
	return humanize.RelTime(*t.Deadline, now, "overdue", "left")
}

// ValidateDescription requires a non-blank single-line description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errors.New("cannot be blank")
	}
	if strings.ContainsAny(description, "\r\n") {
		return errors.New("cannot contain line breaks")
	}
	return nil
}

// ParseDeadline parses a deadline in "2006-01-02 15:04" or "2006-01-02"
// form, interpreted in local time.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(DeadlineLayout, s, time.Local); err == nil {
		return d, nil
	}
	if d, err := time.ParseInLocation(DeadlineDateLayout, s, time.Local); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q: want %q or %q", s, DeadlineLayout, DeadlineDateLayout)
}

// SortKey selects a listing order.
type SortKey string

// Supported sort keys.
const (
	SortByID       SortKey = "id"
	SortByCreated  SortKey = "created"
	SortByDeadline SortKey = "deadline"
)

// IsValid checks if the sort key is a supported value.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByID, SortByCreated, SortByDeadline:
		return true
	default:
		return false
	}
}

// Sort orders tasks in place. Deadline order puts undated tasks last;
// ties fall back to ID so the order is stable across runs.
func Sort(tasks []Task, key SortKey) {
	slices.SortFunc(tasks, func(a, b Task) int {
		switch key {
		case SortByCreated:
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
		case SortByDeadline:
			switch {
			case a.Deadline == nil && b.Deadline != nil:
				return 1
			case a.Deadline != nil && b.Deadline == nil:
				return -1
			case a.Deadline != nil && b.Deadline != nil:
				if c := a.Deadline.Compare(*b.Deadline); c != 0 {
					return c
				}
			}
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// FilterStatus returns tasks whose derived status at now matches. An
// empty status keeps everything.
func FilterStatus(tasks []Task, status Status, now time.Time) []Task {
	if status == "" {
		return tasks
	}
	var out []Task
	for _, t := range tasks {
		if t.StatusAt(now) == status {
			out = append(out, t)
		}
	}
	return out
}

// NextID returns one past the highest ID in use, starting at 1. IDs of
// removed tasks are never reused while a higher ID remains.
func NextID(tasks []Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
