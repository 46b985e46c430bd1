/*
withholding.go - Statutory withholding tax (源泉徴収税)

PURPOSE:
  Computes the withholding amount on a yen payment, either at the
  statutory two-bracket schedule or at a caller-supplied flat rate.

STATUTORY SCHEDULE (income tax + reconstruction surtax):
  amount <= 1,000,000 yen:  10.21% of the amount
  amount  > 1,000,000 yen:  10.21% of the first 1,000,000 yen
                          + 20.42% of the excess

  The schedule is progressive, NOT a flat high rate above the threshold:
  the first million is always taxed at the standard rate, only the excess
  at the high rate. Each bracket is rounded to whole yen SEPARATELY and
  the rounded parts are summed. Collapsing this into a single effective
  rate multiply changes results at the yen level; keep the two-step form.

CONTRACT:
  Withholding(amountJPY)            statutory schedule, amountJPY >= 0
  WithholdingAtRate(amountJPY, pct) flat custom rate, pct in [0,100]

SEE ALSO:
  - money.go: RoundYen rounding rule
  - record/derive.go: Applies this when the withholding flag is set
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// STATUTORY RATES
// =============================================================================

var (
	// WithholdingRateStandard applies up to the bracket threshold. 10.21%.
	WithholdingRateStandard = decimal.NewFromFloat(0.1021)

	// WithholdingRateHigh applies to the excess over the threshold. 20.42%.
	WithholdingRateHigh = decimal.NewFromFloat(0.2042)

	// WithholdingThreshold is the bracket boundary: 1,000,000 yen.
	WithholdingThreshold = decimal.NewFromInt(1_000_000)
)

// =============================================================================
// CALCULATION
// =============================================================================

// Withholding computes statutory withholding tax on a yen amount.
func Withholding(amountJPY decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amountJPY); err != nil {
		return decimal.Zero, err
	}

	if amountJPY.LessThanOrEqual(WithholdingThreshold) {
		return RoundYen(amountJPY.Mul(WithholdingRateStandard)), nil
	}

	// Progressive brackets: round base and excess independently, then sum.
	baseTax := RoundYen(WithholdingThreshold.Mul(WithholdingRateStandard))
	excessTax := RoundYen(amountJPY.Sub(WithholdingThreshold).Mul(WithholdingRateHigh))
	return baseTax.Add(excessTax), nil
}

// WithholdingAtRate computes withholding at a flat custom rate in percent.
func WithholdingAtRate(amountJPY, ratePct decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amountJPY); err != nil {
		return decimal.Zero, err
	}
	if err := checkPercent(ratePct); err != nil {
		return decimal.Zero, err
	}
	return RoundYen(amountJPY.Mul(ratePct).Div(oneHundred)), nil
}
