package menu

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mkaye/deskbook/internal/core/ledger"
	"github.com/mkaye/deskbook/internal/core/styles"
)

func (m *Menu) ledgerLoop(ctx context.Context) {
	for {
		if m.session == nil {
			var choice string
			ok := m.pick("Ledger", []huh.Option[string]{
				huh.NewOption("Log in", "login"),
				huh.NewOption("Register an account", "register"),
			}, &choice)
			if !ok {
				return
			}

			switch choice {
			case "login":
				m.exec("ledger login", func() error { return m.ledgerLogin(ctx) })
			case "register":
				m.exec("ledger register", func() error { return m.ledgerRegister(ctx) })
			}
			continue
		}

		var choice string
		title := fmt.Sprintf("Ledger: %s (%s)", m.session.Name, m.session.Number)
		ok := m.pick(title, []huh.Option[string]{
			huh.NewOption("Record income", "income"),
			huh.NewOption("Record expense", "expense"),
			huh.NewOption("Report", "report"),
			huh.NewOption("Log out", "logout"),
		}, &choice)
		if !ok {
			return
		}

		switch choice {
		case "income":
			m.exec("ledger add", func() error { return m.ledgerAdd(ctx, ledger.TypeIncome) })
		case "expense":
			m.exec("ledger add", func() error { return m.ledgerAdd(ctx, ledger.TypeExpense) })
		case "report":
			m.exec("ledger report", func() error { return m.ledgerReport(ctx) })
		case "logout":
			m.session = nil
		}
	}
}

func (m *Menu) ledgerRegister(ctx context.Context) error {
	var (
		number   string
		name     string
		category ledger.Category
		password string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account number").
				Description("Digits only").
				Validate(ledger.ValidateAccountNumber).
				Value(&number),
			huh.NewInput().
				Title("Holder name").
				Validate(ledger.ValidateHolderName).
				Value(&name),
			huh.NewSelect[ledger.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&category),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(ledger.ValidatePassword).
				Value(&password),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	acct, err := m.app.Ledger.Register(ctx, number, name, password, category)
	if err != nil {
		return err
	}

	m.session = &acct
	m.printSuccess("registered account %s for %s", acct.Number, acct.Name)
	return nil
}

func (m *Menu) ledgerLogin(ctx context.Context) error {
	var number, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account number").
				Validate(ledger.ValidateAccountNumber).
				Value(&number),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(ledger.ValidatePassword).
				Value(&password),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	acct, err := m.app.Ledger.Authenticate(ctx, number, password)
	if err != nil {
		return err
	}

	m.session = &acct
	m.printSuccess("logged in as %s", acct.Name)
	return nil
}

func (m *Menu) ledgerAdd(ctx context.Context, typ ledger.EntryType) error {
	var amountInput, description string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Description("Positive, up to two decimal places").
				Validate(validateAmount).
				Value(&amountInput),
			huh.NewInput().
				Title("Description").
				Description(`Optional, recorded as "N/A" when blank`).
				Value(&description),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	amount, err := ledger.ParseAmount(amountInput)
	if err != nil {
		return err
	}

	tx, err := m.app.Ledger.AddTransaction(ctx, m.session.Number, typ, amount, description)
	if err != nil {
		return err
	}

	m.printSuccess("recorded %s of %s", tx.Type, ledger.FormatCents(tx.AmountCents))
	return nil
}

func (m *Menu) ledgerReport(ctx context.Context) error {
	report, err := m.app.Ledger.Report(ctx, m.session.Number)
	if err != nil {
		return err
	}

	m.printTitle(fmt.Sprintf("Account %s: %s", report.Account.Number, report.Account.Name))

	categoryStyle := styles.Value.Foreground(styles.ColorForString(string(report.Account.Category)))
	_, _ = fmt.Fprintf(m.out, "%s %s\n", styles.Label.Render("Category:"), categoryStyle.Render(string(report.Account.Category)))
	_, _ = fmt.Fprintf(m.out, "%s  %s\n", styles.Label.Render("Income:"), styles.Success.Render(ledger.FormatCents(report.IncomeCents)))
	_, _ = fmt.Fprintf(m.out, "%s %s\n", styles.Label.Render("Expense:"), styles.Error.Render(ledger.FormatCents(report.ExpenseCents)))

	balance := styles.Success
	if report.BalanceCents() < 0 {
		balance = styles.Error
	}
	_, _ = fmt.Fprintf(m.out, "%s %s\n", styles.Label.Render("Balance:"), balance.Render(ledger.FormatCents(report.BalanceCents())))

	if len(report.Transactions) == 0 {
		m.printEmpty("no transactions")
		return nil
	}

	_, _ = fmt.Fprintln(m.out)
	for _, tx := range report.Transactions {
		amount := styles.Success.Render("+" + ledger.FormatCents(tx.AmountCents))
		if tx.Type == ledger.TypeExpense {
			amount = styles.Error.Render("-" + ledger.FormatCents(tx.AmountCents))
		}
		_, _ = fmt.Fprintf(m.out, "%s  %s  %s\n",
			styles.Muted.Render(tx.Time.Format("2006-01-02 15:04")),
			pad(amount, 14),
			styles.Value.Render(tx.Description),
		)
	}
	return nil
}

func categoryOptions() []huh.Option[ledger.Category] {
	categories := ledger.Categories()
	opts := make([]huh.Option[ledger.Category], len(categories))
	for i, c := range categories {
		opts[i] = huh.NewOption(string(c), c)
	}
	return opts
}

func validateAmount(s string) error {
	_, err := ledger.ParseAmount(s)
	return err
}
