package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is what the UI shows for a value that failed to parse or does
// not exist. Display code must never fall through to a literal "NaN".
const Placeholder = "–"

// ParseTemp parses a decimal-string temperature as stored in the readings
// table. The store transmits numerics as strings, so every figure goes
// through here before arithmetic or display.
func ParseTemp(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty temperature")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse temperature %q: %w", s, err)
	}
	return d, nil
}

// FormatTemp renders a stored temperature string with one decimal place,
// degrading to Placeholder when the value does not parse.
func FormatTemp(s string) string {
	d, err := ParseTemp(s)
	if err != nil {
		return Placeholder
	}
	return d.StringFixed(1)
}

// FormatDelta renders a signed delta with one decimal place and an explicit
// leading plus for increases. The value is rounded before the sign check so
// a delta that displays as 0.0 never carries a sign.
func FormatDelta(d decimal.Decimal) string {
	r := d.Round(1)
	if r.IsPositive() {
		return "+" + r.StringFixed(1)
	}
	return r.StringFixed(1)
}
