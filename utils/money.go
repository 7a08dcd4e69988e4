package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is used when the business does not declare one
const DefaultCurrencySymbol = "$"

// FormatMoney formats an amount like "$12,500" or "$12,500.50".
// Cents are dropped when the amount is whole. Comma is the thousands separator.
func FormatMoney(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}

	neg := amount.IsNegative()
	amount = amount.Abs().Round(2)

	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Shift(2).IntPart()
	s := whole.String()

	var b strings.Builder
	// Pre-allocate: digits + separators + symbol + cents
	b.Grow(len(s) + len(s)/3 + len(symbol) + 4)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if cents > 0 {
		b.WriteByte('.')
		if cents < 10 {
			b.WriteByte('0')
		}
		b.WriteString(decimal.NewFromInt(cents).String())
	}

	return b.String()
}
