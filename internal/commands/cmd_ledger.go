package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mkaye/deskbook/internal/core/ledger"
	"github.com/mkaye/deskbook/internal/deskbook"
	"github.com/mkaye/deskbook/pkg/iojson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func (cmd *LedgerCmd) ledger() *deskbook.LedgerService {
	return cmd.app.Ledger
}

// LedgerCmd implements the deskbook ledger command group.
type LedgerCmd struct {
	flags *Flags
	app   *deskbook.App

	// shared flags
	account  string
	password string

	// register flags
	registerName     string
	registerCategory string

	// add flags
	addDescription string

	// report flags
	reportJSON bool
}

// NewLedgerCmd creates a new ledger command.
func NewLedgerCmd(flags *Flags, app *deskbook.App) *LedgerCmd {
	return &LedgerCmd{flags: flags, app: app}
}

// Register adds the ledger command to the application.
func (cmd *LedgerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "ledger",
		Usage: "Track income and expenses per account",
		Description: `Ledger commands for the personal finance tracker.

Accounts are protected by a password. Interactive runs prompt for it
without echo; scripts can pass --password or DESKBOOK_LEDGER_PASSWORD.

Examples:
  deskbook ledger register --account 1001 --name "Ada Lovelace" --category freelancer
  deskbook ledger add --account 1001 --description "invoice #3" income 1250.50
  deskbook ledger report --account 1001`,
		Commands: []*cli.Command{
			cmd.registerCmd(),
			cmd.addCmd(),
			cmd.reportCmd(),
		},
	})

	return app
}

func (cmd *LedgerCmd) passwordFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "password",
		Usage:       "account password (prompted when omitted on a terminal)",
		Sources:     cli.EnvVars("DESKBOOK_LEDGER_PASSWORD"),
		Destination: &cmd.password,
	}
}

func (cmd *LedgerCmd) accountFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "account",
		Aliases:     []string{"a"},
		Usage:       "account number",
		Required:    true,
		Destination: &cmd.account,
	}
}

func (cmd *LedgerCmd) registerCmd() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "Register a new account",
		UsageText: "deskbook ledger register --account <number> --name <name> --category <category> [--password <password>]",
		Description: `Registers a ledger account. The account number is digits only and
must be unused; the category is one of freelancer, "full time", "part time".

Examples:
  deskbook ledger register --account 1001 --name "Ada Lovelace" --category freelancer`,
		Flags: []cli.Flag{
			cmd.accountFlag(),
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "account holder name",
				Required:    true,
				Destination: &cmd.registerName,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "employment category (freelancer, full time, part time)",
				Required:    true,
				Destination: &cmd.registerCategory,
			},
			cmd.passwordFlag(),
		},
		Action: cmd.runRegister,
	}
}

func (cmd *LedgerCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Record a transaction",
		UsageText: "deskbook ledger add --account <number> [--description <text>] <income|expense> <amount>",
		Description: `Records an income or expense entry after authenticating. Amounts are
positive decimals with at most two decimal places. A blank description
is recorded as "N/A".

Examples:
  deskbook ledger add --account 1001 --description "invoice #3" income 1250.50
  deskbook ledger add --account 1001 expense 12.99`,
		Flags: []cli.Flag{
			cmd.accountFlag(),
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"m"},
				Usage:       "what the entry was for",
				Destination: &cmd.addDescription,
			},
			cmd.passwordFlag(),
		},
		Action: cmd.runAdd,
	}
}

func (cmd *LedgerCmd) reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Show totals and transaction history",
		UsageText: "deskbook ledger report --account <number> [--json]",
		Flags: []cli.Flag{
			cmd.accountFlag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.reportJSON,
			},
			cmd.passwordFlag(),
		},
		Action: cmd.runReport,
	}
}

func (cmd *LedgerCmd) runRegister(ctx context.Context, c *cli.Command) error {
	category, err := ledger.ParseCategory(cmd.registerCategory)
	if err != nil {
		return err
	}

	password, err := cmd.readPassword()
	if err != nil {
		return err
	}

	acct, err := cmd.ledger().Register(ctx, cmd.account, cmd.registerName, password, category)
	if err != nil {
		return fmt.Errorf("register account: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "registered account %s for %s\n", acct.Number, acct.Name)
	return nil
}

func (cmd *LedgerCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: deskbook ledger add --account <number> [--description <text>] <income|expense> <amount>")
	}

	amount, err := ledger.ParseAmount(c.Args().Get(1))
	if err != nil {
		return err
	}

	if _, err := cmd.authenticate(ctx); err != nil {
		return err
	}

	tx, err := cmd.ledger().AddTransaction(ctx, cmd.account, ledger.EntryType(c.Args().Get(0)), amount, cmd.addDescription)
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "recorded %s of %s\n", tx.Type, ledger.FormatCents(tx.AmountCents))
	return nil
}

func (cmd *LedgerCmd) runReport(ctx context.Context, c *cli.Command) error {
	if _, err := cmd.authenticate(ctx); err != nil {
		return err
	}

	report, err := cmd.ledger().Report(ctx, cmd.account)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	out := c.Root().Writer

	if cmd.reportJSON {
		return iojson.WriteWith(out, os.Stderr, report)
	}

	_, _ = fmt.Fprintf(out, "Account %s: %s (%s)\n", report.Account.Number, report.Account.Name, report.Account.Category)
	_, _ = fmt.Fprintf(out, "Income:  %s\n", ledger.FormatCents(report.IncomeCents))
	_, _ = fmt.Fprintf(out, "Expense: %s\n", ledger.FormatCents(report.ExpenseCents))
	_, _ = fmt.Fprintf(out, "Balance: %s\n", ledger.FormatCents(report.BalanceCents()))

	if len(report.Transactions) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, tx := range report.Transactions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.Time.Format("2006-01-02 15:04"), tx.Type, ledger.FormatCents(tx.AmountCents), tx.Description)
	}
	return w.Flush()
}

func (cmd *LedgerCmd) authenticate(ctx context.Context) (ledger.Account, error) {
	password, err := cmd.readPassword()
	if err != nil {
		return ledger.Account{}, err
	}
	return cmd.ledger().Authenticate(ctx, cmd.account, password)
}

// readPassword resolves the account password: flag or environment first,
// then a no-echo terminal prompt.
func (cmd *LedgerCmd) readPassword() (string, error) {
	if cmd.password != "" {
		return cmd.password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password given; use --password or DESKBOOK_LEDGER_PASSWORD")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
