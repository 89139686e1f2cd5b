package deskbook

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/mkaye/deskbook/internal/core/ledger"
)

// LedgerService wraps the account and transaction stores with
// registration, authentication, and reporting.
type LedgerService struct {
	accounts     ledger.AccountStore
	transactions ledger.TransactionStore
	log          zerolog.Logger
	now          func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accounts ledger.AccountStore, transactions ledger.TransactionStore, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		accounts:     accounts,
		transactions: transactions,
		log:          log.With().Str("component", "ledger-service").Logger(),
		now:          time.Now,
	}
}

// Register creates a new account. Only the SHA-256 digest of the
// password is stored.
func (s *LedgerService) Register(ctx context.Context, number, name, password string, category ledger.Category) (ledger.Account, error) {
	err := criterio.ValidateStruct(
		criterio.Run("account", number, ledger.ValidateAccountNumber),
		criterio.Run("name", name, ledger.ValidateHolderName),
		criterio.Run("password", password, ledger.ValidatePassword),
	)
	if err != nil {
		return ledger.Account{}, err
	}
	if !category.IsValid() {
		return ledger.Account{}, criterio.NewFieldErrors("category",
			fmt.Errorf("invalid category %q: must be one of freelancer, full time, part time", category))
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return ledger.Account{}, err
	}

	number = strings.TrimSpace(number)
	for _, existing := range accounts {
		if existing.Number == number {
			return ledger.Account{}, fmt.Errorf("account %s: %w", number, ledger.ErrAccountExists)
		}
	}

	acct := ledger.Account{
		Number:       number,
		Name:         strings.TrimSpace(name),
		Category:     category,
		PasswordHash: ledger.HashPassword(password),
	}

	accounts = append(accounts, acct)
	if err := s.accounts.Save(ctx, accounts); err != nil {
		return ledger.Account{}, err
	}

	s.log.Info().Str("account", acct.Number).Str("category", string(acct.Category)).Msg("account registered")
	return acct, nil
}

// Authenticate returns the account when the credentials match. The
// error never reveals whether the account or the password was wrong.
func (s *LedgerService) Authenticate(ctx context.Context, number, password string) (ledger.Account, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return ledger.Account{}, err
	}

	number = strings.TrimSpace(number)
	idx := slices.IndexFunc(accounts, func(a ledger.Account) bool {
		return a.Number == number
	})
	if idx < 0 {
		return ledger.Account{}, ledger.ErrBadCredentials
	}
	if !accounts[idx].VerifyPassword(password) {
		s.log.Warn().Str("account", number).Msg("failed login attempt")
		return ledger.Account{}, ledger.ErrBadCredentials
	}

	return accounts[idx], nil
}

// AddTransaction appends an income or expense entry for the account.
// A blank description is recorded as "N/A".
func (s *LedgerService) AddTransaction(ctx context.Context, account string, typ ledger.EntryType, amountCents int64, description string) (ledger.Transaction, error) {
	if !typ.IsValid() {
		return ledger.Transaction{}, criterio.NewFieldErrors("type",
			fmt.Errorf("invalid type %q: must be income or expense", typ))
	}
	if amountCents <= 0 {
		return ledger.Transaction{}, criterio.NewFieldErrors("amount",
			fmt.Errorf("amount must be greater than zero"))
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = ledger.DefaultDescription
	}
	if strings.ContainsAny(description, "\r\n") {
		return ledger.Transaction{}, criterio.NewFieldErrors("description",
			fmt.Errorf("cannot contain line breaks"))
	}

	if _, err := s.lookup(ctx, account); err != nil {
		return ledger.Transaction{}, err
	}

	tx := ledger.Transaction{
		Account:     strings.TrimSpace(account),
		Time:        s.now(),
		Type:        typ,
		AmountCents: amountCents,
		Description: description,
	}

	if err := s.transactions.Append(ctx, tx); err != nil {
		return ledger.Transaction{}, err
	}

	s.log.Info().
		Str("account", tx.Account).
		Str("type", string(tx.Type)).
		Int64("amount_cents", tx.AmountCents).
		Msg("transaction recorded")
	return tx, nil
}

// Report builds the account's totals and transaction history in
// chronological order.
func (s *LedgerService) Report(ctx context.Context, account string) (ledger.Report, error) {
	acct, err := s.lookup(ctx, account)
	if err != nil {
		return ledger.Report{}, err
	}

	all, err := s.transactions.Load(ctx)
	if err != nil {
		return ledger.Report{}, err
	}

	report := ledger.Report{Account: acct}
	for _, tx := range all {
		if tx.Account != acct.Number {
			continue
		}
		report.Transactions = append(report.Transactions, tx)
		switch tx.Type {
		case ledger.TypeIncome:
			report.IncomeCents += tx.AmountCents
		case ledger.TypeExpense:
			report.ExpenseCents += tx.AmountCents
		}
	}

	slices.SortStableFunc(report.Transactions, func(a, b ledger.Transaction) int {
		return a.Time.Compare(b.Time)
	})

	return report, nil
}

func (s *LedgerService) lookup(ctx context.Context, number string) (ledger.Account, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return ledger.Account{}, err
	}

	number = strings.TrimSpace(number)
	idx := slices.IndexFunc(accounts, func(a ledger.Account) bool {
		return a.Number == number
	})
	if idx < 0 {
		return ledger.Account{}, fmt.Errorf("account %s: %w", number, ledger.ErrNotFound)
	}
	return accounts[idx], nil
}
