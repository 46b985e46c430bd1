/*
proration.go - Business-use proration (家事按分)

PURPOSE:
  Splits a mixed business/personal expense by its business-use percentage.
  A sole proprietor working from home deducts only the business share of
  rent, utilities, and communication costs; the proration rate captures
  that share.

CONTRACT:
  Prorate(amountJPY, ratePct)
    amountJPY >= 0, else ErrInvalidAmount
    ratePct in [0,100], else ErrInvalidRate
    returns round(amountJPY * ratePct / 100) in whole yen

SEE ALSO:
  - money.go: RoundYen rounding rule
  - record/derive.go: Applies this when the proration flag is set
*/
package engine

import "github.com/shopspring/decimal"

// Prorate returns the business-use share of a yen amount at the given
// percentage.
func Prorate(amountJPY, ratePct decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amountJPY); err != nil {
		return decimal.Zero, err
	}
	if err := checkPercent(ratePct); err != nil {
		return decimal.Zero, err
	}
	return RoundYen(amountJPY.Mul(ratePct).Div(oneHundred)), nil
}
