package deskbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/mkaye/deskbook/internal/core/contact"
)

// ContactService wraps contact.Store with validation, duplicate
// detection, and display-order lookups. Contacts have no stored IDs;
// they are addressed by their 1-based position in the name-sorted
// listing.
type ContactService struct {
	store  contact.Store
	groups []string
	log    zerolog.Logger
}

// NewContactService creates a new ContactService. groups is the allowed
// group set in canonical spelling.
func NewContactService(store contact.Store, groups []string, log zerolog.Logger) *ContactService {
	return &ContactService{
		store:  store,
		groups: groups,
		log:    log.With().Str("component", "contact-service").Logger(),
	}
}

// Groups returns the configured group names.
func (s *ContactService) Groups() []string {
	return slices.Clone(s.groups)
}

// normalize trims fields, validates them, and canonicalizes the group.
func (s *ContactService) normalize(c contact.Contact) (contact.Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Number = strings.TrimSpace(c.Number)
	c.Email = strings.TrimSpace(c.Email)

	if err := c.Validate(); err != nil {
		return contact.Contact{}, err
	}

	group, ok := contact.CanonicalGroup(c.Group, s.groups)
	if !ok {
		return contact.Contact{}, criterio.NewFieldErrors("group",
			fmt.Errorf("unknown group %q: must be one of %s", c.Group, strings.Join(s.groups, ", ")))
	}
	c.Group = group

	return c, nil
}

// Add validates and stores a new contact. The name/number pair must not
// collide with an existing contact; names compare case-insensitively.
func (s *ContactService) Add(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	c, err := s.normalize(c)
	if err != nil {
		return contact.Contact{}, err
	}

	contacts, err := s.store.Load(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	key := c.Key()
	for _, existing := range contacts {
		if existing.Key() == key {
			return contact.Contact{}, fmt.Errorf("%s (%s): %w", c.Name, c.Number, contact.ErrDuplicate)
		}
	}

	contacts = append(contacts, c)
	if err := s.store.Save(ctx, contacts); err != nil {
		return contact.Contact{}, err
	}

	s.log.Info().Str("name", c.Name).Str("group", c.Group).Msg("contact added")
	return c, nil
}

// List returns the whole contact book in display order.
func (s *ContactService) List(ctx context.Context) ([]contact.Contact, error) {
	contacts, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	contact.SortByName(contacts)
	return contacts, nil
}

// Get returns the contact at the given 1-based position in display order.
func (s *ContactService) Get(ctx context.Context, position int) (contact.Contact, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	if position < 1 || position > len(contacts) {
		return contact.Contact{}, fmt.Errorf("position %d: %w", position, contact.ErrNotFound)
	}
	return contacts[position-1], nil
}

// SearchName returns contacts whose name starts with prefix, in display
// order. The match is case-insensitive.
func (s *ContactService) SearchName(ctx context.Context, prefix string) ([]contact.Contact, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return contact.FilterNamePrefix(contacts, prefix), nil
}

// SearchGroup returns the members of a group, in display order.
func (s *ContactService) SearchGroup(ctx context.Context, group string) ([]contact.Contact, error) {
	canonical, ok := contact.CanonicalGroup(group, s.groups)
	if !ok {
		return nil, criterio.NewFieldErrors("group",
			fmt.Errorf("unknown group %q: must be one of %s", group, strings.Join(s.groups, ", ")))
	}

	contacts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return contact.FilterGroup(contacts, canonical), nil
}

// ContactUpdate carries new field values for an update. Blank fields
// keep the current value.
type ContactUpdate struct {
	Name   string
	Number string
	Email  string
	Group  string
}

// Update edits the contact at the given display position. The updated
// name/number pair must stay unique against the rest of the book.
func (s *ContactService) Update(ctx context.Context, position int, upd ContactUpdate) (contact.Contact, error) {
	contacts, err := s.store.Load(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	sorted := slices.Clone(contacts)
	contact.SortByName(sorted)
	if position < 1 || position > len(sorted) {
		return contact.Contact{}, fmt.Errorf("position %d: %w", position, contact.ErrNotFound)
	}
	target := sorted[position-1]

	idx := slices.Index(contacts, target)
	if idx < 0 {
		return contact.Contact{}, fmt.Errorf("position %d: %w", position, contact.ErrNotFound)
	}

	next := target
	if upd.Name != "" {
		next.Name = upd.Name
	}
	if upd.Number != "" {
		next.Number = upd.Number
	}
	if upd.Email != "" {
		next.Email = upd.Email
	}
	if upd.Group != "" {
		next.Group = upd.Group
	}

	next, err = s.normalize(next)
	if err != nil {
		return contact.Contact{}, err
	}

	key := next.Key()
	for i, existing := range contacts {
		if i == idx {
			continue
		}
		if existing.Key() == key {
			return contact.Contact{}, fmt.Errorf("%s (%s): %w", next.Name, next.Number, contact.ErrDuplicate)
		}
	}

	contacts[idx] = next
	if err := s.store.Save(ctx, contacts); err != nil {
		return contact.Contact{}, err
	}

	s.log.Info().Str("name", next.Name).Msg("contact updated")
	return next, nil
}

// Remove deletes the contact matching the name/number pair and returns
// it. Names compare case-insensitively, numbers verbatim.
func (s *ContactService) Remove(ctx context.Context, name, number string) (contact.Contact, error) {
	contacts, err := s.store.Load(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	key := contact.KeyOf(name, number)
	idx := slices.IndexFunc(contacts, func(c contact.Contact) bool {
		return c.Key() == key
	})
	if idx < 0 {
		return contact.Contact{}, fmt.Errorf("%s (%s): %w", name, number, contact.ErrNotFound)
	}

	removed := contacts[idx]
	contacts = slices.Delete(contacts, idx, idx+1)

	if err := s.store.Save(ctx, contacts); err != nil {
		return contact.Contact{}, err
	}

	s.log.Info().Str("name", removed.Name).Msg("contact removed")
	return removed, nil
}

// ExportCSV writes the contact book as CSV in display order. The header
// row is always written, even for an empty book. Returns the number of
// contacts exported.
func (s *ContactService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Contact", "Email", "Group"}); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, c := range contacts {
		if err := cw.Write([]string{c.Name, c.Number, c.Email, c.Group}); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	s.log.Info().Int("contacts", len(contacts)).Msg("exported contact book")
	return len(contacts), nil
}
