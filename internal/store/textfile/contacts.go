package textfile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mkaye/deskbook/internal/core/contact"
)

// ContactStore persists the contact book, one contact per line:
// name,number,email,group. Email may be empty.
type ContactStore struct {
	fs   afero.Fs
	path string
	log  zerolog.Logger
	mu   sync.RWMutex
}

var _ contact.Store = (*ContactStore)(nil)

// NewContactStore creates a contact store backed by the given file.
func NewContactStore(fs afero.Fs, path string, log zerolog.Logger) *ContactStore {
	return &ContactStore{
		fs:   fs,
		path: path,
		log:  log.With().Str("component", "contactstore").Logger(),
	}
}

// Load reads all contacts in file order.
func (s *ContactStore) Load(ctx context.Context) ([]contact.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := readRecords(s.fs, s.path, s.log)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	contacts := make([]contact.Contact, 0, len(records))
	for _, rec := range records {
		c, err := decodeContact(rec.fields)
		if err != nil {
			s.log.Warn().Str("path", s.path).Int("line", rec.line).Err(err).Msg("skipping malformed contact")
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Save replaces the stored contact book atomically.
func (s *ContactStore) Save(ctx context.Context, contacts []contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, []string{c.Name, c.Number, c.Email, c.Group})
	}

	if err := writeRecords(s.fs, s.path, records); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	return nil
}

func decodeContact(fields []string) (contact.Contact, error) {
	if len(fields) != 4 {
		return contact.Contact{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}

	c := contact.Contact{
		Name:   strings.TrimSpace(fields[0]),
		Number: strings.TrimSpace(fields[1]),
		Email:  strings.TrimSpace(fields[2]),
		Group:  strings.TrimSpace(fields[3]),
	}
	if c.Name == "" || c.Number == "" {
		return contact.Contact{}, errors.New("name and number cannot be empty")
	}
	return c, nil
}
