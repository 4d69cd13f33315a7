package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScaled(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scaled
		wantErr bool
	}{
		{name: "fraction", input: "2.5", want: 250},
		{name: "integer", input: "3", want: 300},
		{name: "two decimals", input: "10.25", want: 1025},
		{name: "rounds half away from zero", input: "1.005", want: 101},
		{name: "surrounding spaces", input: " 7.1 ", want: 710},
		{name: "zero", input: "0", want: 0},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "largest storable", input: "92233720368547758.07", want: math.MaxInt64},
		{name: "one hundredth past int64", input: "92233720368547758.08", wantErr: true},
		{name: "far past int64", input: "1e30", wantErr: true},
		{name: "far below int64", input: "-1e30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScaled(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaledCompact(t *testing.T) {
	tests := []struct {
		value Scaled
		fixed string
		want  string
	}{
		{value: 250, fixed: "2.50", want: "2.5"},
		{value: 300, fixed: "3.00", want: "3"},
		{value: 1000, fixed: "10.00", want: "10"},
		{value: 105, fixed: "1.05", want: "1.05"},
		{value: 0, fixed: "0.00", want: "0"},
		{value: 2518, fixed: "25.18", want: "25.18"},
	}

	for _, tt := range tests {
		t.Run(tt.fixed, func(t *testing.T) {
			assert.Equal(t, tt.fixed, tt.value.Fixed())
			assert.Equal(t, tt.want, tt.value.Compact())
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestScaledFromDecimalOutOfRange(t *testing.T) {
	_, err := ScaledFromDecimal(decimal.RequireFromString("100000000000000000"))
	assert.ErrorIs(t, err, ErrScaledOutOfRange)

	got, err := ScaledFromDecimal(decimal.RequireFromString("-92233720368547758.08"))
	require.NoError(t, err)
	assert.Equal(t, Scaled(math.MinInt64), got)
}
