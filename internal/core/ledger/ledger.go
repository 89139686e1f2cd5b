// Package ledger provides the domain types for the income and expense
// tracker: password-protected accounts and their transactions.
package ledger

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Category classifies how an account holder earns.
type Category string

// Supported account categories.
const (
	CategoryFreelancer Category = "freelancer"
	CategoryFullTime   Category = "full time"
	CategoryPartTime   Category = "part time"
)

// Categories returns all supported categories in display order.
func Categories() []Category {
	return []Category{CategoryFreelancer, CategoryFullTime, CategoryPartTime}
}

// IsValid checks if the category is a supported value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFreelancer, CategoryFullTime, CategoryPartTime:
		return true
	default:
		return false
	}
}

// ParseCategory resolves input to a category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	in := strings.TrimSpace(strings.ToLower(s))
	for _, c := range Categories() {
		if in == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q: must be one of freelancer, full time, part time", s)
}

// Account is a registered ledger user. Only the SHA-256 hex digest of
// the password is kept.
type Account struct {
	Number       string   `json:"number"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	PasswordHash string   `json:"-"`
}

// HashPassword returns the SHA-256 hex digest of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares the password against the stored hash in
// constant time.
func (a Account) VerifyPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(password)), []byte(a.PasswordHash)) == 1
}

// ValidateAccountNumber requires a non-empty digits-only identifier.
func ValidateAccountNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errors.New("cannot be blank")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return errors.New("may only contain digits")
		}
	}
	return nil
}

// ValidateHolderName requires a non-blank single-line name.
func ValidateHolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("cannot be blank")
	}
	if strings.ContainsAny(name, "\r\n") {
		return errors.New("cannot contain line breaks")
	}
	return nil
}

// ValidatePassword requires a non-empty password.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// EntryType is the direction of a transaction.
type EntryType string

// Supported transaction types.
const (
	TypeIncome  EntryType = "income"
	TypeExpense EntryType = "expense"
)

// IsValid checks if the entry type is a supported value.
func (t EntryType) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	default:
		return false
	}
}

// DefaultDescription is recorded when a transaction is added without one.
const DefaultDescription = "N/A"

// Transaction is one income or expense entry. Amounts are stored in
// cents to keep the arithmetic exact.
type Transaction struct {
	Account     string    `json:"account"`
	Time        time.Time `json:"time"`
	Type        EntryType `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
}

// ParseAmount converts a positive decimal string like "1250.50" into
// cents. At most two fractional digits are accepted.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("amount cannot be blank")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if cents > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("amount %q is too large", s)
	}
	cents *= 100

	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}

	if cents <= 0 {
		return 0, errors.New("amount must be greater than zero")
	}
	return cents, nil
}

// FormatCents renders cents as a grouped decimal string, e.g. 125050
// becomes "1,250.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// Report is the per-account summary: totals plus the transactions that
// produced them, in chronological order.
type Report struct {
	Account      Account       `json:"account"`
	Transactions []Transaction `json:"transactions"`
	IncomeCents  int64         `json:"income_cents"`
	ExpenseCents int64         `json:"expense_cents"`
}

// BalanceCents is income minus expenses.
func (r Report) BalanceCents() int64 {
	return r.IncomeCents - r.ExpenseCents
}
