// Package contact provides the domain types for address book entries.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
)

// Digit bounds for a phone number after separators are stripped.
const (
	MinNumberDigits = 7
	MaxNumberDigits = 15
)

var (
	// numberRe accepts an optional leading +, then digits separated by
	// single spaces or dashes. Must start and end with a digit.
	numberRe = regexp.MustCompile(`^\+?[0-9](?:[0-9 -]*[0-9])?$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Contact is a single address book entry. Email is optional; all other
// fields are required. Group holds the canonical spelling of one of the
// configured group names.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Email  string `json:"email,omitempty"`
	Group  string `json:"group"`
}

// Key identifies a contact for duplicate detection. Names compare
// case-insensitively, numbers compare verbatim after trimming.
type Key struct {
	Name   string
	Number string
}

// KeyOf builds the duplicate-detection key for a name/number pair.
func KeyOf(name, number string) Key {
	return Key{
		Name:   strings.ToLower(strings.TrimSpace(name)),
		Number: strings.TrimSpace(number),
	}
}

// Key returns the contact's duplicate-detection key.
func (c Contact) Key() Key {
	return KeyOf(c.Name, c.Number)
}

// Validate checks the contact's intrinsic fields. Group membership is
// checked separately because the allowed set comes from configuration.
func (c Contact) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("name", c.Name, ValidateName),
		criterio.Run("number", c.Number, ValidateNumber),
		criterio.Run("email", c.Email, ValidateEmail),
	)
}

// ValidateName requires a non-blank single-line name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("cannot be blank")
	}
	if strings.ContainsAny(name, "\r\n") {
		return errors.New("cannot contain line breaks")
	}
	return nil
}

// ValidateNumber requires an optional leading +, digits with space or
// dash separators, and a digit count within the allowed bounds.
func ValidateNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errors.New("cannot be blank")
	}
	if !numberRe.MatchString(number) {
		return errors.New("may only contain digits, spaces, dashes, and a leading +")
	}
	digits := 0
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < MinNumberDigits || digits > MaxNumberDigits {
		return fmt.Errorf("must contain %d to %d digits, got %d", MinNumberDigits, MaxNumberDigits, digits)
	}
	return nil
}

// ValidateEmail accepts an empty email. A non-empty value must look like
// local@domain.tld.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%q is not a valid email address", email)
	}
	return nil
}

// CanonicalGroup resolves input against the configured group names,
// comparing case-insensitively, and returns the canonical spelling.
func CanonicalGroup(input string, groups []string) (string, bool) {
	in := strings.TrimSpace(input)
	for _, g := range groups {
		if strings.EqualFold(in, g) {
			return g, true
		}
	}
	return "", false
}

// SortByName orders contacts for display: case-insensitive by name, then
// by number when names collide. Listing positions (the IDs shown to the
// user) are derived from this order.
func SortByName(contacts []Contact) {
	slices.SortFunc(contacts, func(a, b Contact) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Number, b.Number)
	})
}

// FilterNamePrefix returns contacts whose name starts with prefix,
// compared case-insensitively.
func FilterNamePrefix(contacts []Contact, prefix string) []Contact {
	p := strings.ToLower(strings.TrimSpace(prefix))
	var out []Contact
	for _, c := range contacts {
		if strings.HasPrefix(strings.ToLower(c.Name), p) {
			out = append(out, c)
		}
	}
	return out
}

// FilterGroup returns contacts belonging to the named group, compared
// case-insensitively.
func FilterGroup(contacts []Contact, group string) []Contact {
	var out []Contact
	for _, c := range contacts {
		if strings.EqualFold(c.Group, group) {
			out = append(out, c)
		}
	}
	return out
}
