/*
convert.go - Foreign-currency conversion to yen

PURPOSE:
  Converts a record's original amount into yen. JPY amounts pass through
  untouched (no rounding); USD amounts are multiplied by the TTM exchange
  rate and rounded to the nearest whole yen.

CONTRACT:
  ToJPY(amount, currency, rate)
    amount   >= 0, else ErrInvalidAmount
    currency in {JPY, USD}, else ErrInvalidCurrency
    rate     > 0 when currency is USD, else ErrMissingRate
             ignored when currency is JPY

  The TTM (Telegraphic Transfer Middle) rate is the mid rate published by
  the bank on the transaction date, which is what the NTA expects for
  income recognition.

SEE ALSO:
  - money.go: RoundYen rounding rule
  - record/derive.go: Calls this at record save time
*/
package engine

import "github.com/shopspring/decimal"

// ToJPY converts amount in the given currency to yen.
//
// JPY is the identity: the amount is returned unchanged, fractional or not.
// USD requires a positive rate and the product is rounded to whole yen.
func ToJPY(amount decimal.Decimal, currency Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if !currency.Valid() {
		return decimal.Zero, &CurrencyError{Currency: string(currency)}
	}

	if currency == JPY {
		return amount, nil
	}

	// USD
	if !rate.IsPositive() {
		return decimal.Zero, ErrMissingRate
	}
	return RoundYen(amount.Mul(rate)), nil
}
