package textfile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mkaye/deskbook/internal/core/ledger"
)

// AccountStore persists ledger accounts, one per line:
// number,password_hash,name,category.
type AccountStore struct {
	fs   afero.Fs
	path string
	log  zerolog.Logger
	mu   sync.RWMutex
}

var _ ledger.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates an account store backed by the given file.
func NewAccountStore(fs afero.Fs, path string, log zerolog.Logger) *AccountStore {
	return &AccountStore{
		fs:   fs,
		path: path,
		log:  log.With().Str("component", "accountstore").Logger(),
	}
}

// Load reads all accounts in file order.
func (s *AccountStore) Load(ctx context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := readRecords(s.fs, s.path, s.log)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	accounts := make([]ledger.Account, 0, len(records))
	for _, rec := range records {
		a, err := decodeAccount(rec.fields)
		if err != nil {
			s.log.Warn().Str("path", s.path).Int("line", rec.line).Err(err).Msg("skipping malformed account")
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// Save replaces the stored accounts atomically.
func (s *AccountStore) Save(ctx context.Context, accounts []ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, []string{a.Number, a.PasswordHash, a.Name, string(a.Category)})
	}

	if err := writeRecords(s.fs, s.path, records); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func decodeAccount(fields []string) (ledger.Account, error) {
	if len(fields) != 4 {
		return ledger.Account{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}

	a := ledger.Account{
		Number:       strings.TrimSpace(fields[0]),
		PasswordHash: strings.TrimSpace(fields[1]),
		Name:         strings.TrimSpace(fields[2]),
		Category:     ledger.Category(strings.TrimSpace(fields[3])),
	}
	if a.Number == "" || a.PasswordHash == "" {
		return ledger.Account{}, errors.New("number and password hash cannot be empty")
	}
	if !a.Category.IsValid() {
		return ledger.Account{}, fmt.Errorf("invalid category %q", fields[3])
	}
	return a, nil
}
