/*
store.go - Persistence interface for records and aggregate queries

PURPOSE:
  Defines the interface between the bookkeeping domain and storage. The
  engine and classifier never talk to a database; everything they need
  from history arrives through this interface. Implementations:

  - record/store (memory.go): in-memory, for tests and development
  - store/sqlite:             SQLite-backed reference implementation

AGGREGATE QUERIES:
  Reporting needs read-only aggregates, always scoped to a fiscal year:

    Summary        income / expense / net / withholding totals
    CategoryTotals per-category count and total for one record type
    ClientTotals   per-client income and withholding (支払調書 cross-check)
    MonthlyTotals  per-month income and expense
    HasIncome      does income exist for category(+client) in a year?

  Income rows aggregate on AmountJPY; expense rows aggregate on
  AmountProrated (the deductible share). Withholding sums over income
  rows only.

SEE ALSO:
  - classify/history.go: Uses HasIncome for the prior-year lookback
  - report/: Consumes the aggregate queries
*/
package record

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("record not found")

// =============================================================================
// FILTER
// =============================================================================

// Filter narrows a List call. Zero values mean "no constraint".
type Filter struct {
	FiscalYear int
	Type       Type
	Category   string
	Client     string
	DateFrom   string // inclusive, YYYY-MM-DD
	DateTo     string // inclusive, YYYY-MM-DD
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Summary totals one fiscal year for the tax-return header.
type Summary struct {
	TotalIncome      decimal.Decimal // income, AmountJPY
	TotalExpense     decimal.Decimal // expense, AmountProrated
	NetIncome        decimal.Decimal // TotalIncome - TotalExpense
	TotalWithholding decimal.Decimal // income, WithholdingAmount
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// ClientTotal is one row of the per-client income breakdown.
type ClientTotal struct {
	Client           string
	Count            int
	TotalIncome      decimal.Decimal
	TotalWithholding decimal.Decimal
}

// MonthlyTotal is one row of the per-month cashflow view.
type MonthlyTotal struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// =============================================================================
// STORE
// =============================================================================

// Store persists records and answers the aggregate queries reporting
// needs. Save assigns an ID when the record has none.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error

	// List returns records matching the filter, newest date first.
	List(ctx context.Context, f Filter) ([]*Record, error)

	// Summary returns the fiscal-year totals.
	Summary(ctx context.Context, fiscalYear int) (Summary, error)

	// CategoryTotals returns per-category totals for one record type,
	// largest total first. Expenses total AmountProrated, income AmountJPY.
	CategoryTotals(ctx context.Context, fiscalYear int, t Type) ([]CategoryTotal, error)

	// ClientTotals returns per-client income and withholding, largest
	// income first. Records without a client are skipped.
	ClientTotals(ctx context.Context, fiscalYear int) ([]ClientTotal, error)

	// MonthlyTotals returns per-month income and expense, chronological.
	MonthlyTotals(ctx context.Context, fiscalYear int) ([]MonthlyTotal, error)

	// HasIncome reports whether any income record exists for the category
	// (and client, when non-empty) in the fiscal year.
	HasIncome(ctx context.Context, category, client string, fiscalYear int) (bool, error)

	// Years returns every fiscal year that has records, ascending.
	Years(ctx context.Context) ([]int, error)
}
