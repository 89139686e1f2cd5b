package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/mkaye/deskbook/internal/commands"
	"github.com/mkaye/deskbook/internal/core/config"
	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/mkaye/deskbook/internal/deskbook"
	"github.com/mkaye/deskbook/internal/store/textfile"
	"github.com/mkaye/deskbook/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	// Optional .env for DESKBOOK_* variables in the working directory
	_ = godotenv.Load()

	var (
		logCloser func()
		deskApp   = &deskbook.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "deskbook",
		Usage:     "Keep contacts, to-dos, and a personal ledger in plain text files",
		UsageText: "deskbook [global options] command [command options]",
		Description: `Deskbook bundles three small record keepers behind one binary: a contact
book, a to-do list, and an income/expense ledger. Everything lives in
flat text files under the data directory, so the records stay greppable
and editable by hand.

Run 'deskbook' with no arguments to open the interactive menu.
Run 'deskbook <tool> --help' for the scriptable commands.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DESKBOOK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/deskbook.log)",
				Sources:     cli.EnvVars("DESKBOOK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DESKBOOK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DESKBOOK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/deskbook.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "deskbook.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			// Create stores
			fs := afero.NewOsFs()
			contactStore := textfile.NewContactStore(fs, cfg.ContactsFile(), log.Logger)
			taskStore := textfile.NewTaskStore(fs, cfg.TasksFile(), log.Logger)
			accountStore := textfile.NewAccountStore(fs, cfg.AccountsFile(), log.Logger)
			transactionStore := textfile.NewTransactionStore(fs, cfg.TransactionsFile(), log.Logger)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*deskApp = *deskbook.NewApp(
				cfg,
				contactStore,
				taskStore,
				accountStore,
				transactionStore,
				log.Logger,
			)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	menuCmd := commands.NewMenuCmd(flags, deskApp)

	app = commands.NewContactCmd(flags, deskApp).Register(app)
	app = commands.NewTaskCmd(flags, deskApp).Register(app)
	app = commands.NewLedgerCmd(flags, deskApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = menuCmd.Register(app)

	// Open the menu when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'deskbook --help' for usage", c.Args().First())
		}
		return menuCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
