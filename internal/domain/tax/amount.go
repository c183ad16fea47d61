package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits in every externally visible amount.
const Places = 2

var hundred = decimal.NewFromInt(100)

// ParseAmount reads a rate or value leniently. Missing, blank and non-numeric input all
// read as zero: draft forms post partially filled rows while the user is still typing,
// and recomputing totals must keep working for them.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders d with exactly two fractional digits, rounding half away from zero.
// ParseAmount(FormatAmount(d)) formats back to the same string.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Normalize re-renders a textual amount in canonical form.
func Normalize(s string) string {
	return FormatAmount(ParseAmount(s))
}
