package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/mkaye/deskbook/internal/core/task"
	"github.com/mkaye/deskbook/internal/deskbook"
)

func (m *Menu) tasksLoop(ctx context.Context) {
	for {
		var choice string
		ok := m.pick("Tasks", []huh.Option[string]{
			huh.NewOption("List tasks", "list"),
			huh.NewOption("Add a task", "add"),
			huh.NewOption("Complete a task", "done"),
			huh.NewOption("Edit a task", "edit"),
			huh.NewOption("Remove a task", "remove"),
			huh.NewOption("Clear completed", "clear"),
		}, &choice)
		if !ok {
			return
		}

		switch choice {
		case "list":
			m.exec("task list", func() error { return m.taskList(ctx) })
		case "add":
			m.exec("task add", func() error { return m.taskAdd(ctx) })
		case "done":
			m.exec("task done", func() error { return m.taskDone(ctx) })
		case "edit":
			m.exec("task edit", func() error { return m.taskEdit(ctx) })
		case "remove":
			m.exec("task remove", func() error { return m.taskRemove(ctx) })
		case "clear":
			m.exec("task clear", func() error { return m.taskClear(ctx) })
		}
	}
}

func (m *Menu) taskList(ctx context.Context) error {
	var status string
	err := huh.NewSelect[string]().
		Title("Show").
		Options(
			huh.NewOption("All tasks", ""),
			huh.NewOption("Active", string(task.StatusActive)),
			huh.NewOption("Completed", string(task.StatusCompleted)),
			huh.NewOption("Overdue", string(task.StatusOverdue)),
		).
		Value(&status).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}

	tasks, err := m.app.Tasks.List(ctx, task.Status(status), task.SortKey(m.app.Config.Tasks.DefaultSort))
	if err != nil {
		return err
	}

	m.printTitle("Tasks")
	m.renderTasks(tasks)
	return nil
}

func (m *Menu) taskAdd(ctx context.Context) error {
	var description, deadlineInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Validate(task.ValidateDescription).
				Value(&description),
			huh.NewInput().
				Title("Deadline").
				Description(`Optional, "2006-01-02 15:04" or "2006-01-02"`).
				Validate(validateOptionalDeadline).
				Value(&deadlineInput),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	var deadline *time.Time
	if strings.TrimSpace(deadlineInput) != "" {
		d, err := task.ParseDeadline(deadlineInput)
		if err != nil {
			return err
		}
		deadline = &d
	}

	added, err := m.app.Tasks.Add(ctx, description, deadline)
	if err != nil {
		return err
	}

	m.printSuccess("added task %d", added.ID)
	return nil
}

func (m *Menu) taskDone(ctx context.Context) error {
	id, err := m.promptTaskID(ctx, "Complete which task?")
	if err != nil {
		return err
	}

	_, changed, err := m.app.Tasks.Complete(ctx, id)
	if err != nil {
		return err
	}

	if !changed {
		m.printEmpty(fmt.Sprintf("task %d was already completed", id))
		return nil
	}

	m.printSuccess("completed task %d", id)
	return nil
}

func (m *Menu) taskEdit(ctx context.Context) error {
	id, err := m.promptTaskID(ctx, "Edit which task?")
	if err != nil {
		return err
	}

	current, err := m.app.Tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	description := current.Description
	deadlineInput := ""
	if current.Deadline != nil {
		deadlineInput = current.Deadline.Format(task.DeadlineLayout)
	}
	completed := current.Completed

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Validate(task.ValidateDescription).
				Value(&description),
			huh.NewInput().
				Title("Deadline").
				Description("Clear the field to drop the deadline").
				Validate(validateOptionalDeadline).
				Value(&deadlineInput),
			huh.NewConfirm().
				Title("Completed?").
				Value(&completed),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	upd := deskbook.TaskUpdate{
		Description: description,
		Completed:   &completed,
	}
	if strings.TrimSpace(deadlineInput) == "" {
		upd.ClearDeadline = true
	} else {
		d, err := task.ParseDeadline(deadlineInput)
		if err != nil {
			return err
		}
		upd.Deadline = &d
	}

	updated, err := m.app.Tasks.Update(ctx, id, upd)
	if err != nil {
		return err
	}

	m.printSuccess("updated task %d", updated.ID)
	return nil
}

func (m *Menu) taskRemove(ctx context.Context) error {
	id, err := m.promptTaskID(ctx, "Remove which task?")
	if err != nil {
		return err
	}

	var confirmed bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Remove task %d?", id)).
		Value(&confirmed).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := m.app.Tasks.Remove(ctx, id)
	if err != nil {
		return err
	}

	m.printSuccess("removed task %d (%s)", removed.ID, removed.Description)
	return nil
}

func (m *Menu) taskClear(ctx context.Context) error {
	var confirmed bool
	err := huh.NewConfirm().
		Title("Remove all completed tasks?").
		Value(&confirmed).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := m.app.Tasks.ClearCompleted(ctx)
	if err != nil {
		return err
	}

	m.printSuccess("cleared %d completed task(s)", removed)
	return nil
}

func (m *Menu) promptTaskID(ctx context.Context, title string) (int64, error) {
	tasks, err := m.app.Tasks.List(ctx, "", "")
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, fmt.Errorf("no tasks")
	}

	now := m.app.Tasks.Now()
	opts := make([]huh.Option[int64], len(tasks))
	for i, t := range tasks {
		opts[i] = huh.NewOption(fmt.Sprintf("%d. %s (%s)", t.ID, t.Description, t.StatusAt(now)), t.ID)
	}

	var id int64
	err = huh.NewSelect[int64]().
		Title(title).
		Options(opts...).
		Value(&id).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (m *Menu) renderTasks(tasks []task.Task) {
	if len(tasks) == 0 {
		m.printEmpty("no tasks")
		return
	}

	now := m.app.Tasks.Now()

	descW := 0
	for _, t := range tasks {
		descW = max(descW, lipgloss.Width(t.Description))
	}

	for _, t := range tasks {
		status := t.StatusAt(now)
		line := fmt.Sprintf("%s  %s  %s  %s",
			styles.Muted.Render(fmt.Sprintf("%3d", t.ID)),
			styles.Value.Render(pad(t.Description, descW)),
			statusStyle(status).Render(pad(string(status), 9)),
			styles.Muted.Render(t.Due(now)),
		)
		_, _ = fmt.Fprintln(m.out, line)
	}
}

func statusStyle(status task.Status) lipgloss.Style {
	switch status {
	case task.StatusCompleted:
		return styles.Success
	case task.StatusOverdue:
		return styles.Error
	default:
		return styles.Subtitle
	}
}

func validateOptionalDeadline(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := task.ParseDeadline(s)
	return err
}
