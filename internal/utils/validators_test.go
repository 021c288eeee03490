package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.True(t, ValidateEmail("user@example.com"))
	require.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	require.False(t, ValidateEmail("not-an-email"))
	require.False(t, ValidateEmail("a@b"))
	require.False(t, ValidateEmail(""))
}

func TestValidateName(t *testing.T) {
	require.True(t, ValidateName("Wanjiku Kamau"))
	require.False(t, ValidateName("Al"))
	require.False(t, ValidateName("N4me"))
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0712345678", "254712345678"},
		{"712345678", "254712345678"},
		{"+254712345678", "254712345678"},
		{"254712345678", "254712345678"},
		{"0712 345-678", "254712345678"},
		{"12", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizePhoneNumber(c.in, "", 0), "input %q", c.in)
	}
}

func TestValidatePassword(t *testing.T) {
	require.True(t, ValidatePassword("S3cret!pass"))
	require.False(t, ValidatePassword("short1!"))
	require.False(t, ValidatePassword("nodigits!A"))
	require.False(t, ValidatePassword("NOLOWER1!"))
	require.False(t, ValidatePassword("Bad~char1!"))
}
