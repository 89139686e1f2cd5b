package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mkaye/deskbook/internal/core/contact"
	"github.com/mkaye/deskbook/internal/deskbook"
	"github.com/mkaye/deskbook/pkg/iojson"
	"github.com/urfave/cli/v3"
)

func (cmd *ContactCmd) contacts() *deskbook.ContactService {
	return cmd.app.Contacts
}

// ContactCmd implements the deskbook contact command group.
type ContactCmd struct {
	flags *Flags
	app   *deskbook.App

	// add flags
	addName   string
	addNumber string
	addEmail  string
	addGroup  string

	// ls flags
	lsJSON bool

	// search flags
	searchGroup string
	searchJSON  bool

	// update flags
	updateName   string
	updateNumber string
	updateEmail  string
	updateGroup  string

	// show flags
	showJSON bool

	// export flags
	exportOutput string
}

// NewContactCmd creates a new contact command.
func NewContactCmd(flags *Flags, app *deskbook.App) *ContactCmd {
	return &ContactCmd{flags: flags, app: app}
}

// Register adds the contact command to the application.
func (cmd *ContactCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "contact",
		Usage: "Manage the contact book",
		Description: `Contact commands for the flat-file contact book.

Contacts are listed in name order; the ID column is the contact's
position in that listing and is what show/update take.

Examples:
  deskbook contact add --name "Bob Smith" --number 555-0100
  deskbook contact ls
  deskbook contact search bo
  deskbook contact search --group office
  deskbook contact update --email bob@example.com 2
  deskbook contact rm "Bob Smith" 555-0100
  deskbook contact export`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.lsCmd(),
			cmd.showCmd(),
			cmd.searchCmd(),
			cmd.updateCmd(),
			cmd.rmCmd(),
			cmd.exportCmd(),
		},
	})

	return app
}

func (cmd *ContactCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a contact",
		UsageText: "deskbook contact add --name <name> --number <number> [--email <email>] [--group <group>]",
		Description: `Adds a contact to the book.

The name/number pair must not already exist. The group defaults to the
first configured group and is matched case-insensitively.

Examples:
  deskbook contact add --name "Bob Smith" --number 555-0100
  deskbook contact add --name Ada --number "+1 555 867 5309" --email ada@example.com --group office`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "contact name",
				Required:    true,
				Destination: &cmd.addName,
			},
			&cli.StringFlag{
				Name:        "number",
				Usage:       "phone number",
				Required:    true,
				Destination: &cmd.addNumber,
			},
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "optional email address",
				Destination: &cmd.addEmail,
			},
			&cli.StringFlag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       "contact group (defaults to the first configured group)",
				Destination: &cmd.addGroup,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *ContactCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List all contacts",
		UsageText: "deskbook contact ls [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.lsJSON,
			},
		},
		Action: cmd.runLs,
	}
}

func (cmd *ContactCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single contact",
		UsageText: "deskbook contact show <id>",
		Description: `Shows the contact at the given position in the name-sorted listing.

Examples:
  deskbook contact show 2`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.showJSON,
			},
		},
		Action: cmd.runShow,
	}
}

func (cmd *ContactCmd) searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search contacts by name prefix or group",
		UsageText: "deskbook contact search <prefix> | search --group <group>",
		Description: `Searches the book. A positional argument matches name prefixes
case-insensitively; --group lists one group's members instead.

Examples:
  deskbook contact search bo
  deskbook contact search --group office`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       "list members of a group instead of matching names",
				Destination: &cmd.searchGroup,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.searchJSON,
			},
		},
		Action: cmd.runSearch,
	}
}

func (cmd *ContactCmd) updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a contact",
		UsageText: "deskbook contact update [options] <id>",
		Description: `Updates the contact at the given position in the name-sorted listing.
Omitted flags keep their current values.

Examples:
  deskbook contact update --email bob@example.com 2
  deskbook contact update --group home 1`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "new name",
				Destination: &cmd.updateName,
			},
			&cli.StringFlag{
				Name:        "number",
				Usage:       "new phone number",
				Destination: &cmd.updateNumber,
			},
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "new email address",
				Destination: &cmd.updateEmail,
			},
			&cli.StringFlag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       "new group",
				Destination: &cmd.updateGroup,
			},
		},
		Action: cmd.runUpdate,
	}
}

func (cmd *ContactCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a contact",
		UsageText: "deskbook contact rm <name> <number>",
		Description: `Removes the contact matching the name and number. The name is
matched case-insensitively, the number verbatim.

Examples:
  deskbook contact rm "Bob Smith" 555-0100`,
		ShellComplete: ContactNameCompleter(cmd.app),
		Action:        cmd.runRm,
	}
}

func (cmd *ContactCmd) exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the contact book to CSV",
		UsageText: "deskbook contact export [--output <path>]",
		Description: `Writes all contacts to a CSV file with a header row. An empty book
still produces the header.

Examples:
  deskbook contact export
  deskbook contact export --output /tmp/contacts.csv`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to the configured export path)",
				Destination: &cmd.exportOutput,
			},
		},
		Action: cmd.runExport,
	}
}

func (cmd *ContactCmd) runAdd(ctx context.Context, c *cli.Command) error {
	group := cmd.addGroup
	if group == "" {
		group = cmd.flags.Config.Contacts.Groups[0]
	}

	added, err := cmd.contacts().Add(ctx, contact.Contact{
		Name:   cmd.addName,
		Number: cmd.addNumber,
		Email:  cmd.addEmail,
		Group:  group,
	})
	if err != nil {
		return fmt.Errorf("add contact: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "added %s (%s)\n", added.Name, added.Number)
	return nil
}

func (cmd *ContactCmd) runLs(ctx context.Context, c *cli.Command) error {
	contacts, err := cmd.contacts().List(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	rows := make([]contactRow, len(contacts))
	for i, got := range contacts {
		rows[i] = contactRow{position: i + 1, contact: got}
	}

	return cmd.write(c, rows, cmd.lsJSON)
}

func (cmd *ContactCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: deskbook contact show <id>")
	}

	position, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid contact id %q", c.Args().Get(0))
	}

	got, err := cmd.contacts().Get(ctx, position)
	if err != nil {
		return fmt.Errorf("show contact: %w", err)
	}

	out := c.Root().Writer
	if cmd.showJSON {
		return iojson.WriteWith(out, os.Stderr, buildContactInfo(position, got))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Name:\t%s\n", got.Name)
	_, _ = fmt.Fprintf(w, "Number:\t%s\n", got.Number)
	_, _ = fmt.Fprintf(w, "Email:\t%s\n", got.Email)
	_, _ = fmt.Fprintf(w, "Group:\t%s\n", got.Group)
	return w.Flush()
}

func (cmd *ContactCmd) runSearch(ctx context.Context, c *cli.Command) error {
	prefix := c.Args().Get(0)

	if prefix != "" && cmd.searchGroup != "" {
		return fmt.Errorf("search takes a name prefix or --group, not both")
	}
	if prefix == "" && cmd.searchGroup == "" {
		return fmt.Errorf("usage: deskbook contact search <prefix> | search --group <group>")
	}

	var (
		matches []contact.Contact
		err     error
	)
	if cmd.searchGroup != "" {
		matches, err = cmd.contacts().SearchGroup(ctx, cmd.searchGroup)
	} else {
		matches, err = cmd.contacts().SearchName(ctx, prefix)
	}
	if err != nil {
		return fmt.Errorf("search contacts: %w", err)
	}

	// IDs in search output are positions in the full listing, so they
	// stay usable with show and update.
	all, err := cmd.contacts().List(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}
	positions := make(map[contact.Key]int, len(all))
	for i, got := range all {
		positions[got.Key()] = i + 1
	}

	rows := make([]contactRow, len(matches))
	for i, got := range matches {
		rows[i] = contactRow{position: positions[got.Key()], contact: got}
	}

	return cmd.write(c, rows, cmd.searchJSON)
}

func (cmd *ContactCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: deskbook contact update [options] <id>")
	}

	position, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid contact id %q", c.Args().Get(0))
	}

	updated, err := cmd.contacts().Update(ctx, position, deskbook.ContactUpdate{
		Name:   cmd.updateName,
		Number: cmd.updateNumber,
		Email:  cmd.updateEmail,
		Group:  cmd.updateGroup,
	})
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "updated %s (%s)\n", updated.Name, updated.Number)
	return nil
}

func (cmd *ContactCmd) runRm(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: deskbook contact rm <name> <number>")
	}

	removed, err := cmd.contacts().Remove(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "removed %s (%s)\n", removed.Name, removed.Number)
	return nil
}

func (cmd *ContactCmd) runExport(ctx context.Context, c *cli.Command) error {
	path := cmd.exportOutput
	if path == "" {
		path = cmd.flags.Config.Contacts.Export
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := cmd.contacts().ExportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("export contacts: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "exported %d contact(s) to %s\n", n, path)
	return nil
}

// contactRow pairs a contact with its position in the name-sorted listing.
type contactRow struct {
	position int
	contact  contact.Contact
}

func (cmd *ContactCmd) write(c *cli.Command, rows []contactRow, jsonOutput bool) error {
	out := c.Root().Writer

	if len(rows) == 0 {
		if !jsonOutput {
			fmt.Fprintf(os.Stderr, "No contacts found\n")
		}
		return nil
	}

	if jsonOutput {
		for _, row := range rows {
			if err := iojson.WriteLine(out, buildContactInfo(row.position, row.contact)); err != nil {
				return fmt.Errorf("encode contact: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tNUMBER\tEMAIL\tGROUP")
	for _, row := range rows {
		got := row.contact
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.position, got.Name, got.Number, got.Email, got.Group)
	}
	return w.Flush()
}

// contactInfo is the JSON output format for contact listings.
type contactInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Email  string `json:"email,omitempty"`
	Group  string `json:"group"`
}

func buildContactInfo(position int, c contact.Contact) contactInfo {
	return contactInfo{
		ID:     position,
		Name:   c.Name,
		Number: c.Number,
		Email:  c.Email,
		Group:  c.Group,
	}
}
