package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{name: "plain digits", number: "5551111"},
		{name: "dashed", number: "555-1111"},
		{name: "spaced with country code", number: "+1 555 867 5309"},
		{name: "surrounding whitespace trimmed", number: "  5551111  "},
		{name: "blank", number: "", wantErr: true},
		{name: "letters", number: "555-CALL", wantErr: true},
		{name: "plus alone", number: "+", wantErr: true},
		{name: "plus in middle", number: "555+1111", wantErr: true},
		{name: "trailing dash", number: "555-1111-", wantErr: true},
		{name: "too few digits", number: "555-111", wantErr: true},
		{name: "too many digits", number: "1234567890123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumber(tt.number)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "empty is allowed", email: ""},
		{name: "simple", email: "ada@example.com"},
		{name: "subdomain", email: "ada@mail.example.co.uk"},
		{name: "missing at", email: "ada.example.com", wantErr: true},
		{name: "missing tld", email: "ada@example", wantErr: true},
		{name: "embedded space", email: "ada lovelace@example.com", wantErr: true},
		{name: "double at", email: "ada@@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Ada Lovelace"))
	require.Error(t, ValidateName(""))
	require.Error(t, ValidateName("   "))
	require.Error(t, ValidateName("two\nlines"))
}

func TestContactValidate(t *testing.T) {
	c := Contact{Name: "Ada", Number: "555-1111", Email: "ada@example.com", Group: "Home"}
	require.NoError(t, c.Validate())

	c.Number = "bogus"
	require.Error(t, c.Validate())
}

func TestKeyOf(t *testing.T) {
	a := KeyOf("Ada Lovelace", "555-1111")
	b := KeyOf("  ada lovelace ", "555-1111")
	assert.Equal(t, a, b, "keys fold name case and trim whitespace")

	c := KeyOf("Ada Lovelace", "555-2222")
	assert.NotEqual(t, a, c, "different numbers are different keys")
}

func TestCanonicalGroup(t *testing.T) {
	groups := []string{"Home", "Office"}

	got, ok := CanonicalGroup("office", groups)
	require.True(t, ok)
	assert.Equal(t, "Office", got)

	got, ok = CanonicalGroup(" HOME ", groups)
	require.True(t, ok)
	assert.Equal(t, "Home", got)

	_, ok = CanonicalGroup("Work", groups)
	assert.False(t, ok)
}

func TestSortByName(t *testing.T) {
	contacts := []Contact{
		{Name: "charlie", Number: "555-3333"},
		{Name: "Alice", Number: "555-2222"},
		{Name: "alice", Number: "555-1111"},
		{Name: "Bob", Number: "555-4444"},
	}

	SortByName(contacts)

	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.Name+"/"+c.Number)
	}
	assert.Equal(t, []string{"alice/555-1111", "Alice/555-2222", "Bob/555-4444", "charlie/555-3333"}, names)
}

func TestFilterNamePrefix(t *testing.T) {
	contacts := []Contact{
		{Name: "Ada Lovelace"},
		{Name: "adam smith"},
		{Name: "Bob"},
	}

	got := FilterNamePrefix(contacts, "AD")
	require.Len(t, got, 2)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, "adam smith", got[1].Name)

	assert.Empty(t, FilterNamePrefix(contacts, "z"))
}

func TestFilterGroup(t *testing.T) {
	contacts := []Contact{
		{Name: "Ada", Group: "Home"},
		{Name: "Bob", Group: "Office"},
		{Name: "Cam", Group: "Home"},
	}

	got := FilterGroup(contacts, "home")
	require.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, "Cam", got[1].Name)
}
