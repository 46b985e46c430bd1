/*
validate.go - Record field validation

PURPOSE:
  Validates the raw fields of a record before derivation. All failures
  are deterministic input errors surfaced to the immediate caller; the
  record is never partially derived.

LENGTH LIMITS:
  Category    <= 50 characters
  Client      <= 100 characters
  Description <= 500 characters

  Limits count runes, not bytes: the labels are Japanese.

SEE ALSO:
  - engine/errors.go: Amount/currency/rate/date errors reused here
  - derive.go: Calls Validate before computing derived fields
*/
package record

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/eycjur/final-tax-return/engine"
)

// =============================================================================
// LIMITS
// =============================================================================

const (
	MaxCategoryLength    = 50
	MaxClientLength      = 100
	MaxDescriptionLength = 500
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidType is returned for record types outside {income, expense}.
	ErrInvalidType = errors.New("record type must be income or expense")

	// ErrMissingCategory is returned when the category is empty.
	ErrMissingCategory = errors.New("category is required")

	// ErrFieldTooLong is returned when a text field exceeds its limit.
	ErrFieldTooLong = errors.New("field too long")
)

// FieldLengthError reports which field exceeded which limit.
type FieldLengthError struct {
	Field string
	Max   int
}

func (e *FieldLengthError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

func (e *FieldLengthError) Unwrap() error { return ErrFieldTooLong }

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every raw field of the record. Derived fields are not
// inspected; Derive owns those.
func (r *Record) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if _, err := engine.ParseDate(r.Date); err != nil {
		return err
	}
	if r.Category == "" {
		return ErrMissingCategory
	}
	if utf8.RuneCountInString(r.Category) > MaxCategoryLength {
		return &FieldLengthError{Field: "category", Max: MaxCategoryLength}
	}
	if utf8.RuneCountInString(r.Client) > MaxClientLength {
		return &FieldLengthError{Field: "client", Max: MaxClientLength}
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLength {
		return &FieldLengthError{Field: "description", Max: MaxDescriptionLength}
	}
	if !r.Currency.Valid() {
		return &engine.CurrencyError{Currency: string(r.Currency)}
	}
	if r.AmountOriginal.IsNegative() {
		return &engine.AmountError{Amount: r.AmountOriginal}
	}
	if r.Currency == engine.USD && !r.ExchangeRate.IsPositive() {
		return engine.ErrMissingRate
	}
	if r.Proration {
		if r.ProrationRate.IsNegative() || r.ProrationRate.GreaterThan(oneHundred) {
			return &engine.RateError{Rate: r.ProrationRate}
		}
	}
	return nil
}
