// Package money converts between integer cents, used everywhere in the data
// model, and major-unit decimals, used only at the input and display edge.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotANumber = errors.New("amount is not a number")

// Limits on accepted amounts: decimal exponent in [-maxExponent, maxExponent]
// and input text length.
const (
	maxExponent = 18
	maxInputLen = 64
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

func ToMajor(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatMajor renders cents as a major-unit string with two decimals, e.g. 3000 -> "30.00".
func FormatMajor(cents int64) string {
	return ToMajor(cents).StringFixed(2)
}

// ToCents multiplies by 100 and rounds half away from zero.
func ToCents(amount decimal.Decimal) (int64, error) {
	// Checked before any arithmetic; rescaling to a huge exponent is unbounded work.
	if exp := amount.Exponent(); exp > maxExponent || exp < -maxExponent {
		return 0, fmt.Errorf("amount exponent %d out of range", exp)
	}
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("amount %s out of range", amount.String())
	}
	return cents.IntPart(), nil
}

// ParseCents parses major-unit text such as "30.00" or "12.345" into cents.
func ParseCents(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrNotANumber
	}
	if len(s) > maxInputLen {
		return 0, fmt.Errorf("%w: input too long", ErrNotANumber)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	return ToCents(amount)
}
