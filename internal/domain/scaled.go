package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const scaleExp = 2

// Scaled is a non-integer quantity persisted as an integer count of
// hundredths: 2.5 is stored as 250.
type Scaled int64

var ErrScaledOutOfRange = errors.New("value out of range")

var (
	maxScaled = decimal.NewFromInt(math.MaxInt64)
	minScaled = decimal.NewFromInt(math.MinInt64)
)

func ParseScaled(s string) (Scaled, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	scaled, err := ScaledFromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return scaled, nil
}

// ScaledFromDecimal rounds d to hundredths. Values whose hundredths do
// not fit in an int64 are rejected with ErrScaledOutOfRange.
func ScaledFromDecimal(d decimal.Decimal) (Scaled, error) {
	shifted := d.Shift(scaleExp).Round(0)
	if shifted.GreaterThan(maxScaled) || shifted.LessThan(minScaled) {
		return 0, ErrScaledOutOfRange
	}
	return Scaled(shifted.IntPart()), nil
}

func (s Scaled) Decimal() decimal.Decimal {
	return decimal.New(int64(s), -scaleExp)
}

// Fixed renders the value with exactly two decimals.
func (s Scaled) Fixed() string {
	return s.Decimal().StringFixed(scaleExp)
}

// Compact renders two decimals and then drops trailing zeros,
// so 2.50 becomes 2.5 and 3.00 becomes 3.
func (s Scaled) Compact() string {
	out := s.Fixed()
	if strings.HasSuffix(out, ".00") {
		return strings.TrimSuffix(out, ".00")
	}
	return strings.TrimSuffix(out, "0")
}

func (s Scaled) String() string {
	return s.Compact()
}
