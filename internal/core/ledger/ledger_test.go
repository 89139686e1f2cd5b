package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// sha256("password") is a well-known digest
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		HashPassword("password"),
	)
	assert.NotEqual(t, HashPassword("a"), HashPassword("b"))
}

func TestVerifyPassword(t *testing.T) {
	acct := Account{Number: "1001", PasswordHash: HashPassword("hunter22")}

	assert.True(t, acct.VerifyPassword("hunter22"))
	assert.False(t, acct.VerifyPassword("hunter2"))
	assert.False(t, acct.VerifyPassword(""))
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("Full Time")
	require.NoError(t, err)
	assert.Equal(t, CategoryFullTime, got)

	got, err = ParseCategory(" freelancer ")
	require.NoError(t, err)
	assert.Equal(t, CategoryFreelancer, got)

	_, err = ParseCategory("retired")
	require.Error(t, err)
}

func TestValidateAccountNumber(t *testing.T) {
	require.NoError(t, ValidateAccountNumber("1001"))
	require.Error(t, ValidateAccountNumber(""))
	require.Error(t, ValidateAccountNumber("10-01"))
	require.Error(t, ValidateAccountNumber("abc"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "whole", in: "100", want: 10000},
		{name: "two decimals", in: "1250.50", want: 125050},
		{name: "one decimal", in: "9.5", want: 950},
		{name: "leading dot", in: ".75", want: 75},
		{name: "trimmed", in: " 3.00 ", want: 300},
		{name: "blank", in: "", wantErr: true},
		{name: "zero", in: "0", wantErr: true},
		{name: "zero with decimals", in: "0.00", wantErr: true},
		{name: "negative", in: "-5", wantErr: true},
		{name: "three decimals", in: "1.999", wantErr: true},
		{name: "trailing dot", in: "5.", wantErr: true},
		{name: "not a number", in: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "9.05", FormatCents(905))
	assert.Equal(t, "1,250.50", FormatCents(125050))
	assert.Equal(t, "-42.10", FormatCents(-4210))
}

func TestReportBalance(t *testing.T) {
	r := Report{IncomeCents: 125000, ExpenseCents: 40050}
	assert.Equal(t, int64(84950), r.BalanceCents())
}
