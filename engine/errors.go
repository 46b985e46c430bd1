/*
errors.go - Centralized error types for the calculation engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Every engine failure is a deterministic input-validation failure; there
  are no transient errors and nothing is ever retried.

ERROR CATEGORIES:
  1. Amount errors   - Negative or non-numeric amounts
  2. Currency errors - Currency outside the supported set
  3. Rate errors     - Missing/non-positive exchange rate, percentage out of range
  4. Date errors     - Malformed or impossible calendar dates

USAGE:
  Callers match with errors.Is():

    if errors.Is(err, engine.ErrMissingRate) {
        // surface "TTM required" to the user, keep the edit state
    }

SEE ALSO:
  - convert.go: Uses amount/currency/rate errors
  - withholding.go, proration.go: Use rate errors
  - fiscalyear.go: Uses date errors
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when an amount is negative.
	ErrInvalidAmount = errors.New("amount must be non-negative")

	// ErrInvalidCurrency is returned for currencies outside {JPY, USD}.
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrMissingRate is returned when a USD conversion is requested without
	// a positive exchange rate (TTM).
	ErrMissingRate = errors.New("exchange rate required and must be positive")

	// ErrInvalidRate is returned when a percentage rate falls outside [0,100].
	ErrInvalidRate = errors.New("rate must be between 0 and 100")

	// ErrInvalidDate is returned for malformed date strings or impossible
	// calendar dates.
	ErrInvalidDate = errors.New("invalid date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending value
// =============================================================================

// AmountError reports a rejected amount.
type AmountError struct {
	Amount decimal.Decimal
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %s: must be non-negative", e.Amount)
}

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// CurrencyError reports an unsupported currency code.
type CurrencyError struct {
	Currency string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency: %s", e.Currency)
}

func (e *CurrencyError) Unwrap() error { return ErrInvalidCurrency }

// RateError reports a percentage rate outside [0,100].
type RateError struct {
	Rate decimal.Decimal
}

func (e *RateError) Error() string {
	return fmt.Sprintf("invalid rate %s: must be between 0 and 100", e.Rate)
}

func (e *RateError) Unwrap() error { return ErrInvalidRate }

// DateError reports a date string that could not be parsed.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date: %q (want YYYY-MM-DD)", e.Input)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true for any engine input-validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrMissingRate) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidDate)
}
