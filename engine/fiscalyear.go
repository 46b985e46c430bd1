/*
fiscalyear.go - Fiscal year resolution

PURPOSE:
  Maps a transaction date to its Japanese tax fiscal year. For individual
  income tax the fiscal year IS the calendar year (Jan 1 - Dec 31), so
  this is the calendar year of the date; the point of the function is
  strict validation of the stored date string.

CONTRACT:
  FiscalYear("2025-03-15") == 2025
  FiscalYear("2025-13-01") -> ErrInvalidDate (impossible month)
  FiscalYear("2025-3-15")  -> ErrInvalidDate (not zero-padded)

SEE ALSO:
  - record/derive.go: Stamps the fiscal year at record save time
*/
package engine

import "time"

// DateLayout is the canonical record date format.
const DateLayout = "2006-01-02"

// FiscalYear returns the Japanese tax fiscal year for a YYYY-MM-DD date.
func FiscalYear(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Year(), nil
}

// ParseDate parses a strict YYYY-MM-DD date string.
// time.Parse already rejects impossible calendar dates (2025-02-30).
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, &DateError{Input: date}
	}
	return t, nil
}
