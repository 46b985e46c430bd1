/*
history.go - Prior-year income lookback

PURPOSE:
  Derives the classifier's multi-year-history flag: did the same
  client+category produce income in fiscal year N-1? The lookup is a
  point-in-time read of the record store; whatever isolation the store
  provides is acceptable, and nothing here blocks or retries.

  Keeping this outside the classifier keeps Classify pure and
  independently testable; the classifier itself must never query storage.

SEE ALSO:
  - classifier.go: Consumes the flag this produces
  - record/store.go: The store interface satisfying IncomeHistory
*/
package classify

import "context"

// IncomeHistory is the single read the lookback needs from the record
// store. record.Store satisfies it.
type IncomeHistory interface {
	// HasIncome reports whether any income record exists for the
	// category (and client, when non-empty) in the given fiscal year.
	HasIncome(ctx context.Context, category, client string, fiscalYear int) (bool, error)
}

// HistoryChecker resolves multi-year history against a record store.
type HistoryChecker struct {
	Store IncomeHistory
}

// NewHistoryChecker creates a checker backed by the given store.
func NewHistoryChecker(store IncomeHistory) *HistoryChecker {
	return &HistoryChecker{Store: store}
}

// HasMultiYearHistory reports whether the client+category earned income
// in the fiscal year immediately preceding the given one.
func (h *HistoryChecker) HasMultiYearHistory(ctx context.Context, category, client string, fiscalYear int) (bool, error) {
	return h.Store.HasIncome(ctx, category, client, fiscalYear-1)
}
