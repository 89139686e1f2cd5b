// Package menu implements the interactive surface: a looping huh-driven
// menu over the same services the CLI subcommands use.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/mkaye/deskbook/internal/core/ledger"
	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/mkaye/deskbook/internal/deskbook"
)

// Menu drives the interactive loop. Aborting a prompt (esc, ctrl-c)
// cancels the current operation and falls back to the enclosing menu
// instead of exiting.
type Menu struct {
	app *deskbook.App
	out io.Writer
	log zerolog.Logger

	// session is the authenticated ledger account, nil when logged out
	session *ledger.Account
}

// New creates a menu over the given app, writing to out.
func New(app *deskbook.App, out io.Writer, log zerolog.Logger) *Menu {
	return &Menu{
		app: app,
		out: out,
		log: log.With().Str("component", "menu").Logger(),
	}
}

// Run loops on the top-level tool picker until the user quits.
func (m *Menu) Run(ctx context.Context) error {
	for {
		var choice string
		err := huh.NewSelect[string]().
			Title("deskbook").
			Description("Pick a tool").
			Options(
				huh.NewOption("Contacts", "contacts"),
				huh.NewOption("Tasks", "tasks"),
				huh.NewOption("Ledger", "ledger"),
				huh.NewOption("Quit", "quit"),
			).
			Value(&choice).
			WithTheme(styles.FormTheme()).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("menu: %w", err)
		}

		switch choice {
		case "contacts":
			m.contactsLoop(ctx)
		case "tasks":
			m.tasksLoop(ctx)
		case "ledger":
			m.ledgerLoop(ctx)
		case "quit":
			return nil
		}
	}
}

// pick shows one tool's operation menu. Returns false when the user
// chose Back or aborted.
func (m *Menu) pick(title string, options []huh.Option[string], choice *string) bool {
	err := huh.NewSelect[string]().
		Title(title).
		Options(append(options, huh.NewOption("Back", "back"))...).
		Value(choice).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil || *choice == "back" {
		return false
	}
	return true
}

// exec runs one operation, printing failures and keeping the loop
// alive. Aborted prompts are swallowed so esc backs out quietly.
func (m *Menu) exec(op string, fn func() error) {
	err := fn()
	switch {
	case err == nil:
	case errors.Is(err, huh.ErrUserAborted):
	default:
		m.log.Debug().Err(err).Str("op", op).Msg("menu operation failed")
		_, _ = fmt.Fprintln(m.out, styles.Error.Render(err.Error()))
	}
}

func (m *Menu) printSuccess(format string, args ...any) {
	_, _ = fmt.Fprintln(m.out, styles.Success.Render(fmt.Sprintf(format, args...)))
}

func (m *Menu) printTitle(title string) {
	_, _ = fmt.Fprintln(m.out, styles.Title.Render(title))
	_, _ = fmt.Fprintln(m.out, styles.Divider.Render(strings.Repeat("─", len(title))))
}

func (m *Menu) printEmpty(msg string) {
	_, _ = fmt.Fprintln(m.out, styles.Muted.Render(msg))
}

// pad right-pads s to the given display width. Width ignores ANSI
// escapes, so styled strings pad correctly too.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
