package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags *Flags
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "deskbook config validate",
				Description: "Validates the configuration file, checking themes, groups, sort keys, and store file paths.",
				Action:      cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		_, _ = fmt.Fprintln(out, styles.Success.Render("configuration is valid"))
		_, _ = fmt.Fprintf(out, "config:   %s\n", cmd.flags.ConfigPath)
		_, _ = fmt.Fprintf(out, "data dir: %s\n", cmd.flags.Config.DataDir)
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			_, _ = fmt.Fprintf(out, "%s %s: %s\n", styles.Error.Render("error"), fe.Field, fe.Err)
		}
		return cli.Exit(fmt.Sprintf("%d problem(s) found", len(fieldErrs)), 1)
	}

	return err
}
