package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadline(t time.Time) *time.Time {
	return &t
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want Status
	}{
		{
			name: "no deadline is active",
			task: Task{},
			want: StatusActive,
		},
		{
			name: "future deadline is active",
			task: Task{Deadline: deadline(now.Add(time.Hour))},
			want: StatusActive,
		},
		{
			name: "past deadline is overdue",
			task: Task{Deadline: deadline(now.Add(-time.Hour))},
			want: StatusOverdue,
		},
		{
			name: "deadline exactly now is not overdue",
			task: Task{Deadline: deadline(now)},
			want: StatusActive,
		},
		{
			name: "completed wins over overdue",
			task: Task{Completed: true, Deadline: deadline(now.Add(-time.Hour))},
			want: StatusCompleted,
		},
		{
			name: "completed without deadline",
			task: Task{Completed: true},
			want: StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.StatusAt(now))
		})
	}
}

func TestDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "no deadline", Task{}.Due(now))

	left := Task{Deadline: deadline(now.Add(2 * time.Hour))}.Due(now)
	assert.Contains(t, left, "left")

	overdue := Task{Deadline: deadline(now.Add(-2 * time.Hour))}.Due(now)
	assert.Contains(t, overdue, "overdue")
}

func TestParseDeadline(t *testing.T) {
	got, err := ParseDeadline("2025-06-15 09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local), got)

	got, err = ParseDeadline("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), got)

	_, err = ParseDeadline("15/06/2025")
	require.Error(t, err)

	_, err = ParseDeadline("")
	require.Error(t, err)
}

func TestValidateDescription(t *testing.T) {
	require.NoError(t, ValidateDescription("buy milk"))
	require.Error(t, ValidateDescription(""))
	require.Error(t, ValidateDescription("  "))
	require.Error(t, ValidateDescription("line\nbreak"))
}

func TestSort(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tasks := func() []Task {
		return []Task{
			{ID: 3, CreatedAt: base.Add(1 * time.Hour), Deadline: deadline(base.Add(72 * time.Hour))},
			{ID: 1, CreatedAt: base.Add(3 * time.Hour)},
			{ID: 2, CreatedAt: base.Add(2 * time.Hour), Deadline: deadline(base.Add(24 * time.Hour))},
		}
	}

	t.Run("by id", func(t *testing.T) {
		ts := tasks()
		Sort(ts, SortByID)
		assert.Equal(t, []int64{1, 2, 3}, ids(ts))
	})

	t.Run("by created", func(t *testing.T) {
		ts := tasks()
		Sort(ts, SortByCreated)
		assert.Equal(t, []int64{3, 2, 1}, ids(ts))
	})

	t.Run("by deadline puts undated last", func(t *testing.T) {
		ts := tasks()
		Sort(ts, SortByDeadline)
		assert.Equal(t, []int64{2, 3, 1}, ids(ts))
	})
}

func ids(tasks []Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := []Task{
		{ID: 1},
		{ID: 2, Completed: true},
		{ID: 3, Deadline: deadline(now.Add(-time.Minute))},
	}

	assert.Len(t, FilterStatus(tasks, "", now), 3)
	assert.Equal(t, []int64{1}, ids(FilterStatus(tasks, StatusActive, now)))
	assert.Equal(t, []int64{2}, ids(FilterStatus(tasks, StatusCompleted, now)))
	assert.Equal(t, []int64{3}, ids(FilterStatus(tasks, StatusOverdue, now)))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), NextID(nil))
	assert.Equal(t, int64(4), NextID([]Task{{ID: 3}, {ID: 1}}))

	// removing the highest task frees its ID for reuse
	assert.Equal(t, int64(3), NextID([]Task{{ID: 2}, {ID: 1}}))
}
