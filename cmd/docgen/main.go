// Command docgen generates CLI reference documentation from the deskbook
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/mkaye/deskbook/internal/commands"
	"github.com/mkaye/deskbook/internal/deskbook"
)

func main() {
	flags := &commands.Flags{}
	app := &deskbook.App{}

	root := &cli.Command{
		Name:      "deskbook",
		Usage:     "Keep contacts, to-dos, and a personal ledger in plain text files",
		UsageText: "deskbook [global options] command [command options]",
		Description: `Deskbook bundles three small record keepers behind one binary: a contact
book, a to-do list, and an income/expense ledger. Everything lives in
flat text files under the data directory, so the records stay greppable
and editable by hand.

Run 'deskbook' with no arguments to open the interactive menu.
Run 'deskbook <tool> --help' for the scriptable commands.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("DESKBOOK_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/deskbook.log)",
				Sources: cli.EnvVars("DESKBOOK_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("DESKBOOK_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("DESKBOOK_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewContactCmd(flags, app).Register(root)
	root = commands.NewTaskCmd(flags, app).Register(root)
	root = commands.NewLedgerCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewMenuCmd(flags, app).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
