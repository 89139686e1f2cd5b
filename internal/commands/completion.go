package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mkaye/deskbook/internal/deskbook"
)

// ContactNameCompleter returns a ShellCompleteFunc that suggests contact
// names as positional completions. Set this as the ShellComplete field on
// any cli.Command that accepts contact names as arguments.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ContactNameCompleter(app *deskbook.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		contacts, err := app.Contacts.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, c := range contacts {
			_, _ = fmt.Fprintln(w, c.Name)
		}
	}
}
