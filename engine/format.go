/*
format.go - Yen display formatting

PURPOSE:
  Renders yen amounts for tables and the tax-return CSV. Fixed Japanese
  formatting: truncate to whole yen (fractional yen are never displayed),
  thousands separators, optional currency symbol.

CONTRACT:
  FormatCurrency(1234567)  == "¥1,234,567"
  FormatNumber(1234567)    == "1,234,567"

  Negative values keep the sign ahead of the symbol ("-¥12,345") so that
  a negative net income in the summary reads naturally.

SEE ALSO:
  - report/csv.go: Uses these for the export
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a yen amount with the ¥ symbol.
func FormatCurrency(amount decimal.Decimal) string {
	neg, groups := groupThousands(amount)
	if neg {
		return "-¥" + groups
	}
	return "¥" + groups
}

// FormatNumber renders a yen amount without the symbol.
func FormatNumber(amount decimal.Decimal) string {
	neg, groups := groupThousands(amount)
	if neg {
		return "-" + groups
	}
	return groups
}

// groupThousands truncates to whole yen and inserts comma separators.
func groupThousands(amount decimal.Decimal) (negative bool, s string) {
	digits := amount.Truncate(0).String()
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	if len(digits) <= 3 {
		return negative, digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return negative, b.String()
}
