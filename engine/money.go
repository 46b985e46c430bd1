/*
Package engine provides the calculation core for Japanese sole-proprietor
tax bookkeeping.

PURPOSE:
  Pure functions for the derived fields of an income/expense record:
  currency conversion to yen, statutory withholding tax, expense proration,
  fiscal-year resolution, and yen display formatting. Every function is
  stateless and side-effect-free; all of them may be called concurrently
  without coordination.

KEY CONCEPTS IN THIS FILE (money.go):
  - Currency: the supported currency codes (JPY, USD)
  - RoundYen: the single rounding rule applied to every monetary result

ROUNDING RULE:
  All monetary results are rounded to the nearest whole yen using
  round-half-to-even (banker's rounding). This matches the original
  bookkeeping behavior and is pinned by tests; do not switch to
  round-half-up without revisiting withholding.go.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal end to end, no float arithmetic on money
  2. Determinism: same inputs always produce the same derived values
  3. Explicit errors: invalid input fails synchronously, nothing partial

SEE ALSO:
  - convert.go: Currency conversion
  - withholding.go: Statutory withholding schedule
  - proration.go: Business/personal expense splits
  - format.go: Yen display strings
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// CURRENCY
// =============================================================================

// Currency is a supported currency code.
type Currency string

const (
	JPY Currency = "JPY"
	USD Currency = "USD"
)

// Valid reports whether the currency is supported.
func (c Currency) Valid() bool {
	return c == JPY || c == USD
}

// Currencies lists every supported currency.
func Currencies() []Currency {
	return []Currency{JPY, USD}
}

// =============================================================================
// ROUNDING
// =============================================================================

// RoundYen rounds a monetary value to the nearest whole yen,
// half-to-even.
func RoundYen(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(0)
}

// checkAmount rejects negative amounts.
func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &AmountError{Amount: amount}
	}
	return nil
}

// checkPercent rejects rates outside [0,100].
func checkPercent(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return &RateError{Rate: rate}
	}
	return nil
}

var oneHundred = decimal.NewFromInt(100)
