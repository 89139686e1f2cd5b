package textfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mkaye/deskbook/internal/core/ledger"
)

// TransactionStore persists ledger transactions, one per line:
// account,time,type,amount_cents,description. Transactions are
// immutable, so adds append rather than rewriting the file.
type TransactionStore struct {
	fs   afero.Fs
	path string
	log  zerolog.Logger
	mu   sync.RWMutex
}

var _ ledger.TransactionStore = (*TransactionStore)(nil)

// NewTransactionStore creates a transaction store backed by the given file.
func NewTransactionStore(fs afero.Fs, path string, log zerolog.Logger) *TransactionStore {
	return &TransactionStore{
		fs:   fs,
		path: path,
		log:  log.With().Str("component", "transactionstore").Logger(),
	}
}

// Load reads all transactions in file order.
func (s *TransactionStore) Load(ctx context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := readRecords(s.fs, s.path, s.log)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	txs := make([]ledger.Transaction, 0, len(records))
	for _, rec := range records {
		tx, err := decodeTransaction(rec.fields)
		if err != nil {
			s.log.Warn().Str("path", s.path).Int("line", rec.line).Err(err).Msg("skipping malformed transaction")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Append adds one transaction to the end of the file.
func (s *TransactionStore) Append(ctx context.Context, tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := []string{
		tx.Account,
		tx.Time.Format(time.RFC3339Nano),
		string(tx.Type),
		strconv.FormatInt(tx.AmountCents, 10),
		tx.Description,
	}

	if err := appendRecord(s.fs, s.path, fields); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func decodeTransaction(fields []string) (ledger.Transaction, error) {
	if len(fields) != 5 {
		return ledger.Transaction{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}

	account := strings.TrimSpace(fields[0])
	if account == "" {
		return ledger.Transaction{}, fmt.Errorf("account cannot be empty")
	}

	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(fields[1]))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("invalid time %q", fields[1])
	}

	typ := ledger.EntryType(strings.TrimSpace(fields[2]))
	if !typ.IsValid() {
		return ledger.Transaction{}, fmt.Errorf("invalid type %q", fields[2])
	}

	cents, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil || cents <= 0 {
		return ledger.Transaction{}, fmt.Errorf("invalid amount %q", fields[3])
	}

	return ledger.Transaction{
		Account:     account,
		Time:        ts,
		Type:        typ,
		AmountCents: cents,
		Description: strings.TrimSpace(fields[4]),
	}, nil
}
