package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mkaye/deskbook/internal/deskbook"
	"github.com/mkaye/deskbook/internal/menu"
)

type MenuCmd struct {
	flags *Flags
	app   *deskbook.App
}

// NewMenuCmd creates a new menu command.
func NewMenuCmd(flags *Flags, app *deskbook.App) *MenuCmd {
	return &MenuCmd{flags: flags, app: app}
}

// Register adds the menu command to the application.
func (cmd *MenuCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "menu",
		Usage:       "Open the interactive menu",
		UsageText:   "deskbook menu",
		Description: "Opens the interactive menu. Running deskbook with no arguments does the same.",
		Action:      cmd.Run,
	})

	return app
}

// Run executes the interactive menu. Exported for use as default command.
func (cmd *MenuCmd) Run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the menu needs a terminal; run 'deskbook --help' for the scriptable commands")
	}

	return menu.New(cmd.app, c.Root().Writer, log.Logger).Run(ctx)
}
