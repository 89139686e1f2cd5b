package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/mkaye/deskbook/internal/core/task"
	"github.com/mkaye/deskbook/internal/deskbook"
	"github.com/mkaye/deskbook/pkg/iojson"
	"github.com/urfave/cli/v3"
)

func (cmd *TaskCmd) tasks() *deskbook.TaskService {
	return cmd.app.Tasks
}

// TaskCmd implements the deskbook task command group.
type TaskCmd struct {
	flags *Flags
	app   *deskbook.App

	// add flags
	addDeadline string

	// ls flags
	lsStatus string
	lsSort   string
	lsJSON   bool

	// edit flags
	editDescription   string
	editDeadline      string
	editClearDeadline bool
	editDone          bool
	editReopen        bool
}

// NewTaskCmd creates a new task command.
func NewTaskCmd(flags *Flags, app *deskbook.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the task command to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage the to-do list",
		Description: `Task commands for the flat-file to-do list.

Tasks keep their numeric ID for their whole life; a task's status
(active, completed, overdue) is derived from its deadline and the clock.

Examples:
  deskbook task add --deadline "2025-07-01 17:00" "buy milk"
  deskbook task ls --status overdue
  deskbook task done 3
  deskbook task edit --clear-deadline 3
  deskbook task rm 3
  deskbook task clear`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.lsCmd(),
			cmd.doneCmd(),
			cmd.editCmd(),
			cmd.rmCmd(),
			cmd.clearCmd(),
		},
	})

	return app
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "deskbook task add [--deadline <when>] <description>",
		Description: `Adds a task. The deadline takes "2006-01-02 15:04" or "2006-01-02"
form in local time; a bare date means midnight.

Examples:
  deskbook task add "buy milk"
  deskbook task add --deadline 2026-04-15 "file taxes"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "deadline",
				Aliases:     []string{"d"},
				Usage:       "optional deadline",
				Destination: &cmd.addDeadline,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "deskbook task ls [--status <status>] [--sort <key>] [--json]",
		Description: `Lists tasks. Defaults to every task ordered by the configured sort.

Examples:
  deskbook task ls
  deskbook task ls --status active
  deskbook task ls --sort deadline`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (active, completed, overdue)",
				Destination: &cmd.lsStatus,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort key (id, created, deadline)",
				Destination: &cmd.lsSort,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.lsJSON,
			},
		},
		Action: cmd.runLs,
	}
}

func (cmd *TaskCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed",
		UsageText: "deskbook task done <id>",
		Description: `Marks the task completed. Completing an already completed task is a
no-op and says so.

Examples:
  deskbook task done 3`,
		Action: cmd.runDone,
	}
}

func (cmd *TaskCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task",
		UsageText: "deskbook task edit [options] <id>",
		Description: `Edits a task in place. Omitted flags keep their current values.

Examples:
  deskbook task edit --description "buy oat milk" 3
  deskbook task edit --deadline "2025-07-01 17:00" 3
  deskbook task edit --clear-deadline --reopen 3`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"m"},
				Usage:       "new description",
				Destination: &cmd.editDescription,
			},
			&cli.StringFlag{
				Name:        "deadline",
				Aliases:     []string{"d"},
				Usage:       "new deadline",
				Destination: &cmd.editDeadline,
			},
			&cli.BoolFlag{
				Name:        "clear-deadline",
				Usage:       "remove the deadline",
				Destination: &cmd.editClearDeadline,
			},
			&cli.BoolFlag{
				Name:        "done",
				Usage:       "mark completed",
				Destination: &cmd.editDone,
			},
			&cli.BoolFlag{
				Name:        "reopen",
				Usage:       "mark not completed",
				Destination: &cmd.editReopen,
			},
		},
		Action: cmd.runEdit,
	}
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a task",
		UsageText: "deskbook task rm <id>",
		Action:    cmd.runRm,
	}
}

func (cmd *TaskCmd) clearCmd() *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Remove all completed tasks",
		UsageText: "deskbook task clear",
		Action:    cmd.runClear,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: deskbook task add [--deadline <when>] <description>")
	}

	var deadline *time.Time
	if cmd.addDeadline != "" {
		d, err := task.ParseDeadline(cmd.addDeadline)
		if err != nil {
			return err
		}
		deadline = &d
	}

	added, err := cmd.tasks().Add(ctx, c.Args().Get(0), deadline)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "added task %d\n", added.ID)
	return nil
}

func (cmd *TaskCmd) runLs(ctx context.Context, c *cli.Command) error {
	sortKey := cmd.lsSort
	if sortKey == "" {
		sortKey = cmd.flags.Config.Tasks.DefaultSort
	}

	tasks, err := cmd.tasks().List(ctx, task.Status(cmd.lsStatus), task.SortKey(sortKey))
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	out := c.Root().Writer
	now := cmd.tasks().Now()

	if len(tasks) == 0 {
		if !cmd.lsJSON {
			fmt.Fprintf(os.Stderr, "No tasks found\n")
		}
		return nil
	}

	if cmd.lsJSON {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, buildTaskInfo(t, now)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDESCRIPTION\tSTATUS\tDUE")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Description, t.StatusAt(now), t.Due(now))
	}
	return w.Flush()
}

func (cmd *TaskCmd) runDone(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c, "deskbook task done <id>")
	if err != nil {
		return err
	}

	_, changed, err := cmd.tasks().Complete(ctx, id)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	if !changed {
		_, _ = fmt.Fprintf(c.Root().Writer, "task %d was already completed\n", id)
		return nil
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "completed task %d\n", id)
	return nil
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c, "deskbook task edit [options] <id>")
	if err != nil {
		return err
	}

	if cmd.editDone && cmd.editReopen {
		return fmt.Errorf("--done and --reopen are mutually exclusive")
	}

	upd := deskbook.TaskUpdate{
		Description:   cmd.editDescription,
		ClearDeadline: cmd.editClearDeadline,
	}
	if cmd.editDeadline != "" {
		d, err := task.ParseDeadline(cmd.editDeadline)
		if err != nil {
			return err
		}
		upd.Deadline = &d
	}
	if cmd.editDone || cmd.editReopen {
		completed := cmd.editDone
		upd.Completed = &completed
	}

	updated, err := cmd.tasks().Update(ctx, id, upd)
	if err != nil {
		return fmt.Errorf("edit task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "updated task %d\n", updated.ID)
	return nil
}

func (cmd *TaskCmd) runRm(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c, "deskbook task rm <id>")
	if err != nil {
		return err
	}

	removed, err := cmd.tasks().Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "removed task %d (%s)\n", removed.ID, removed.Description)
	return nil
}

func (cmd *TaskCmd) runClear(ctx context.Context, c *cli.Command) error {
	removed, err := cmd.tasks().ClearCompleted(ctx)
	if err != nil {
		return fmt.Errorf("clear completed tasks: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "cleared %d completed task(s)\n", removed)
	return nil
}

func taskIDArg(c *cli.Command, usage string) (int64, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}

	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", c.Args().Get(0))
	}
	return id, nil
}

// taskInfo is the JSON output format for task listings.
type taskInfo struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Due         string     `json:"due"`
	CreatedAt   time.Time  `json:"created_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func buildTaskInfo(t task.Task, now time.Time) taskInfo {
	return taskInfo{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.StatusAt(now)),
		Due:         t.Due(now),
		CreatedAt:   t.CreatedAt,
		Deadline:    t.Deadline,
	}
}
