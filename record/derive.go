/*
derive.go - Derived field computation

PURPOSE:
  Computes the four derived fields from the raw fields, in one pass, at
  record save time. The derivation is pure and idempotent: running it
  twice on the same raw fields always lands on the same values, so a
  re-saved record never drifts.

DERIVATION ORDER:
  1. AmountJPY          from AmountOriginal, Currency, ExchangeRate
  2. WithholdingAmount  statutory schedule on AmountJPY when flagged, else 0
  3. AmountProrated     Prorate(AmountJPY, rate) when flagged, else AmountJPY
  4. FiscalYear         calendar year of Date

  Withholding and proration both apply to AmountJPY, not to each other:
  withholding is computed on the full payment, proration on the full
  expense.

SEE ALSO:
  - engine/: The pure functions this composes
  - validate.go: Runs first; Derive never works on invalid input
*/
package record

import (
	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/engine"
)

var oneHundred = decimal.NewFromInt(100)

// Derive validates the raw fields and fills in the derived ones.
// On error no derived field is touched.
func (r *Record) Derive() error {
	if err := r.Validate(); err != nil {
		return err
	}

	amountJPY, err := engine.ToJPY(r.AmountOriginal, r.Currency, r.ExchangeRate)
	if err != nil {
		return err
	}

	withholding := decimal.Zero
	if r.WithholdingTax {
		withholding, err = engine.Withholding(amountJPY)
		if err != nil {
			return err
		}
	}

	prorated := amountJPY
	if r.Proration {
		prorated, err = engine.Prorate(amountJPY, r.ProrationRate)
		if err != nil {
			return err
		}
	}

	fiscalYear, err := engine.FiscalYear(r.Date)
	if err != nil {
		return err
	}

	r.AmountJPY = amountJPY
	r.WithholdingAmount = withholding
	r.AmountProrated = prorated
	r.FiscalYear = fiscalYear

	if !r.Proration {
		r.ProrationRate = oneHundred
	}
	return nil
}
