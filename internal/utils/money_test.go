package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("10.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("10.5")))

	_, err = ParseAmount("abc")
	assert.Error(t, err)

	_, err = ParseAmount("-1.00")
	assert.Error(t, err)

	_, err = ParseAmount("1.005")
	assert.Error(t, err)
}

func TestPenceRoundTrip(t *testing.T) {
	cases := []struct {
		s     string
		pence int64
	}{
		{"0.00", 0},
		{"0.01", 1},
		{"7.50", 750},
		{"10.00", 1000},
		{"999.99", 99999},
	}
	for _, tc := range cases {
		d, err := ParseAmount(tc.s)
		require.NoError(t, err)
		assert.EqualValues(t, tc.pence, ToPence(d), tc.s)
		assert.Equal(t, tc.s, FormatPence(tc.pence))
	}
}

func TestFromPence(t *testing.T) {
	assert.True(t, FromPence(1234).Equal(decimal.RequireFromString("12.34")))
	assert.True(t, FromPence(-50).Equal(decimal.RequireFromString("-0.5")))
}
