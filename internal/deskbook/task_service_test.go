package deskbook

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaye/deskbook/internal/core/task"
	"github.com/mkaye/deskbook/internal/store/textfile"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	store := textfile.NewTaskStore(afero.NewMemMapFs(), "tasks.txt", zerolog.Nop())
	svc := NewTaskService(store, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestTaskService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		svc := newTaskService(t)

		first, err := svc.Add(ctx, "buy milk", nil)
		require.NoError(t, err)
		second, err := svc.Add(ctx, "call mom", nil)
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("removing a middle task never reassigns its id", func(t *testing.T) {
		svc := newTaskService(t)

		for _, desc := range []string{"one", "two", "three"} {
			_, err := svc.Add(ctx, desc, nil)
			require.NoError(t, err)
		}

		_, err := svc.Remove(ctx, 2)
		require.NoError(t, err)

		next, err := svc.Add(ctx, "four", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), next.ID)
	})

	t.Run("rejects a blank description", func(t *testing.T) {
		svc := newTaskService(t)

		_, err := svc.Add(ctx, "   ", nil)
		require.Error(t, err)
	})

	t.Run("stamps creation time from the clock", func(t *testing.T) {
		svc := newTaskService(t)

		got, err := svc.Add(ctx, "buy milk", nil)
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(testNow))
	})
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	_, err := svc.Add(ctx, "overdue one", &past)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "active one", &future)
	require.NoError(t, err)
	done, err := svc.Add(ctx, "finished one", nil)
	require.NoError(t, err)
	_, _, err = svc.Complete(ctx, done.ID)
	require.NoError(t, err)

	t.Run("all by default", func(t *testing.T) {
		got, err := svc.List(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("filter by status", func(t *testing.T) {
		got, err := svc.List(ctx, task.StatusOverdue, "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "overdue one", got[0].Description)

		got, err = svc.List(ctx, task.StatusCompleted, "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "finished one", got[0].Description)
	})

	t.Run("deadline sort puts undated last", func(t *testing.T) {
		got, err := svc.List(ctx, "", task.SortByDeadline)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "overdue one", got[0].Description)
		assert.Equal(t, "active one", got[1].Description)
		assert.Equal(t, "finished one", got[2].Description)
	})

	t.Run("rejects unknown status and sort", func(t *testing.T) {
		_, err := svc.List(ctx, "pending", "")
		require.Error(t, err)

		_, err = svc.List(ctx, "", "priority")
		require.Error(t, err)
	})
}

func TestTaskService_Complete(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	added, err := svc.Add(ctx, "buy milk", nil)
	require.NoError(t, err)

	got, changed, err := svc.Complete(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, got.Completed)

	// completing again is a no-op
	_, changed, err = svc.Complete(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = svc.Complete(ctx, 99)
	require.ErrorIs(t, err, task.ErrNotFound)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("edit description only", func(t *testing.T) {
		svc := newTaskService(t)
		due := testNow.Add(time.Hour)
		added, err := svc.Add(ctx, "buy milk", &due)
		require.NoError(t, err)

		got, err := svc.Update(ctx, added.ID, TaskUpdate{Description: "buy oat milk"})
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Description)
		require.NotNil(t, got.Deadline)
		assert.True(t, got.Deadline.Equal(due))
	})

	t.Run("clear deadline", func(t *testing.T) {
		svc := newTaskService(t)
		due := testNow.Add(time.Hour)
		added, err := svc.Add(ctx, "buy milk", &due)
		require.NoError(t, err)

		got, err := svc.Update(ctx, added.ID, TaskUpdate{ClearDeadline: true})
		require.NoError(t, err)
		assert.Nil(t, got.Deadline)
	})

	t.Run("reopen a completed task", func(t *testing.T) {
		svc := newTaskService(t)
		added, err := svc.Add(ctx, "buy milk", nil)
		require.NoError(t, err)
		_, _, err = svc.Complete(ctx, added.ID)
		require.NoError(t, err)

		open := false
		got, err := svc.Update(ctx, added.ID, TaskUpdate{Completed: &open})
		require.NoError(t, err)
		assert.False(t, got.Completed)
		assert.Equal(t, task.StatusActive, got.StatusAt(testNow))
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newTaskService(t)

		_, err := svc.Update(ctx, 42, TaskUpdate{Description: "x"})
		require.ErrorIs(t, err, task.ErrNotFound)
	})
}

func TestTaskService_ClearCompleted(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	keep, err := svc.Add(ctx, "still open", nil)
	require.NoError(t, err)

	for _, desc := range []string{"done one", "done two"} {
		added, err := svc.Add(ctx, desc, nil)
		require.NoError(t, err)
		_, _, err = svc.Complete(ctx, added.ID)
		require.NoError(t, err)
	}

	removed, err := svc.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)

	// clearing a clean list removes nothing
	removed, err = svc.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
