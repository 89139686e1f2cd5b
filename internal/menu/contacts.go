package menu

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkaye/deskbook/internal/core/contact"
	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/mkaye/deskbook/internal/deskbook"
)

func (m *Menu) contactsLoop(ctx context.Context) {
	for {
		var choice string
		ok := m.pick("Contacts", []huh.Option[string]{
			huh.NewOption("List contacts", "list"),
			huh.NewOption("Add a contact", "add"),
			huh.NewOption("Search by name", "search-name"),
			huh.NewOption("Search by group", "search-group"),
			huh.NewOption("Update a contact", "update"),
			huh.NewOption("Remove a contact", "remove"),
			huh.NewOption("Export to CSV", "export"),
		}, &choice)
		if !ok {
			return
		}

		switch choice {
		case "list":
			m.exec("contact list", func() error { return m.contactList(ctx) })
		case "add":
			m.exec("contact add", func() error { return m.contactAdd(ctx) })
		case "search-name":
			m.exec("contact search", func() error { return m.contactSearchName(ctx) })
		case "search-group":
			m.exec("contact search", func() error { return m.contactSearchGroup(ctx) })
		case "update":
			m.exec("contact update", func() error { return m.contactUpdate(ctx) })
		case "remove":
			m.exec("contact remove", func() error { return m.contactRemove(ctx) })
		case "export":
			m.exec("contact export", func() error { return m.contactExport(ctx) })
		}
	}
}

func (m *Menu) contactList(ctx context.Context) error {
	contacts, err := m.app.Contacts.List(ctx)
	if err != nil {
		return err
	}

	m.printTitle("Contacts")
	m.renderContacts(contacts, nil)
	return nil
}

func (m *Menu) contactAdd(ctx context.Context) error {
	var c contact.Contact

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(contact.ValidateName).
				Value(&c.Name),
			huh.NewInput().
				Title("Number").
				Description("Digits with optional spaces, dashes, and a leading +").
				Validate(contact.ValidateNumber).
				Value(&c.Number),
			huh.NewInput().
				Title("Email").
				Description("Optional").
				Validate(contact.ValidateEmail).
				Value(&c.Email),
			huh.NewSelect[string]().
				Title("Group").
				Options(groupOptions(m.app.Contacts.Groups())...).
				Value(&c.Group),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	added, err := m.app.Contacts.Add(ctx, c)
	if err != nil {
		return err
	}

	m.printSuccess("added %s (%s)", added.Name, added.Number)
	return nil
}

func (m *Menu) contactSearchName(ctx context.Context) error {
	var prefix string
	err := huh.NewInput().
		Title("Name starts with").
		Validate(contact.ValidateName).
		Value(&prefix).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}

	matches, err := m.app.Contacts.SearchName(ctx, prefix)
	if err != nil {
		return err
	}

	positions, err := m.listingPositions(ctx, matches)
	if err != nil {
		return err
	}

	m.printTitle(fmt.Sprintf("Contacts matching %q", prefix))
	m.renderContacts(matches, positions)
	return nil
}

func (m *Menu) contactSearchGroup(ctx context.Context) error {
	var group string
	err := huh.NewSelect[string]().
		Title("Group").
		Options(groupOptions(m.app.Contacts.Groups())...).
		Value(&group).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}

	matches, err := m.app.Contacts.SearchGroup(ctx, group)
	if err != nil {
		return err
	}

	positions, err := m.listingPositions(ctx, matches)
	if err != nil {
		return err
	}

	m.printTitle(fmt.Sprintf("Contacts in %s", group))
	m.renderContacts(matches, positions)
	return nil
}

func (m *Menu) contactUpdate(ctx context.Context) error {
	position, err := m.promptPosition(ctx)
	if err != nil {
		return err
	}

	current, err := m.app.Contacts.Get(ctx, position)
	if err != nil {
		return err
	}

	// pre-filled with the current values; edits replace them
	next := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(contact.ValidateName).
				Value(&next.Name),
			huh.NewInput().
				Title("Number").
				Validate(contact.ValidateNumber).
				Value(&next.Number),
			huh.NewInput().
				Title("Email").
				Validate(contact.ValidateEmail).
				Value(&next.Email),
			huh.NewSelect[string]().
				Title("Group").
				Options(groupOptions(m.app.Contacts.Groups())...).
				Value(&next.Group),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	updated, err := m.app.Contacts.Update(ctx, position, deskbook.ContactUpdate{
		Name:   next.Name,
		Number: next.Number,
		Email:  next.Email,
		Group:  next.Group,
	})
	if err != nil {
		return err
	}

	m.printSuccess("updated %s (%s)", updated.Name, updated.Number)
	return nil
}

func (m *Menu) contactRemove(ctx context.Context) error {
	var name, number string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(contact.ValidateName).
				Value(&name),
			huh.NewInput().
				Title("Number").
				Validate(contact.ValidateNumber).
				Value(&number),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove %s (%s)?", name, number)).
		Value(&confirmed).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := m.app.Contacts.Remove(ctx, name, number)
	if err != nil {
		return err
	}

	m.printSuccess("removed %s (%s)", removed.Name, removed.Number)
	return nil
}

func (m *Menu) contactExport(ctx context.Context) error {
	path := m.app.Config.Contacts.Export
	err := huh.NewInput().
		Title("Export path").
		Value(&path).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := m.app.Contacts.ExportCSV(ctx, f)
	if err != nil {
		return err
	}

	m.printSuccess("exported %d contact(s) to %s", n, path)
	return nil
}

func (m *Menu) promptPosition(ctx context.Context) (int, error) {
	contacts, err := m.app.Contacts.List(ctx)
	if err != nil {
		return 0, err
	}

	m.printTitle("Contacts")
	m.renderContacts(contacts, nil)

	var position int
	err = huh.NewSelect[int]().
		Title("Which contact?").
		Options(contactOptions(contacts)...).
		Value(&position).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return 0, err
	}
	return position, nil
}

// listingPositions maps each match to its position in the full listing,
// so the numbers shown next to search results work with update.
func (m *Menu) listingPositions(ctx context.Context, matches []contact.Contact) ([]int, error) {
	all, err := m.app.Contacts.List(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[contact.Key]int, len(all))
	for i, c := range all {
		byKey[c.Key()] = i + 1
	}

	positions := make([]int, len(matches))
	for i, c := range matches {
		positions[i] = byKey[c.Key()]
	}
	return positions, nil
}

// renderContacts prints one line per contact. positions maps each row to
// its listing position; nil means rows are already in listing order.
func (m *Menu) renderContacts(contacts []contact.Contact, positions []int) {
	if len(contacts) == 0 {
		m.printEmpty("no contacts")
		return
	}

	nameW, numberW := 0, 0
	for _, c := range contacts {
		nameW = max(nameW, lipgloss.Width(c.Name))
		numberW = max(numberW, lipgloss.Width(c.Number))
	}

	for i, c := range contacts {
		position := i + 1
		if positions != nil {
			position = positions[i]
		}

		line := fmt.Sprintf("%s  %s  %s  %s",
			styles.Muted.Render(fmt.Sprintf("%3d", position)),
			styles.Value.Render(pad(c.Name, nameW)),
			pad(c.Number, numberW),
			groupStyle(c.Group).Render(c.Group),
		)
		if c.Email != "" {
			line += "  " + styles.Muted.Render(c.Email)
		}
		_, _ = fmt.Fprintln(m.out, line)
	}
}

func groupStyle(group string) lipgloss.Style {
	return styles.Value.Foreground(styles.ColorForString(group))
}

func groupOptions(groups []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(groups))
	for i, g := range groups {
		opts[i] = huh.NewOption(g, g)
	}
	return opts
}

func contactOptions(contacts []contact.Contact) []huh.Option[int] {
	opts := make([]huh.Option[int], len(contacts))
	for i, c := range contacts {
		opts[i] = huh.NewOption(fmt.Sprintf("%d. %s (%s)", i+1, c.Name, c.Number), i+1)
	}
	return opts
}
