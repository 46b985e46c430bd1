/*
Package record defines the income/expense transaction record and computes
its derived fields.

PURPOSE:
  A Record is one bookkeeping entry: a payment received or an expense
  paid, with the raw fields the user entered and four derived fields the
  engine computes once at save time:

    AmountJPY          yen value of the original amount
    WithholdingAmount  statutory withholding, when the flag is set
    AmountProrated     business-use share, when the proration flag is set
    FiscalYear         calendar year of the date

  Derived fields are stored, not recomputed at read time; Derive is
  idempotent, so re-saving an unchanged record never drifts.

KEY CONCEPTS IN THIS FILE (record.go):
  - Type: income vs. expense
  - Record: the full field set of a bookkeeping entry
  - Default category sets for a fresh book

SEE ALSO:
  - derive.go: Computes the derived fields via the engine
  - validate.go: Field validation and length limits
  - store.go: Persistence interface and aggregate queries
*/
package record

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/engine"
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// Type distinguishes income from expense records.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether the type is one of the two known values.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// =============================================================================
// RECORD
// =============================================================================

// Record is a single bookkeeping entry. Date is the canonical YYYY-MM-DD
// string the user entered; ExchangeRate is the TTM rate and only
// meaningful for USD records.
type Record struct {
	ID          string
	Date        string
	Type        Type
	Category    string
	Client      string
	Description string

	Currency       engine.Currency
	AmountOriginal decimal.Decimal
	ExchangeRate   decimal.Decimal // TTM; required positive when Currency is USD

	WithholdingTax bool
	Proration      bool
	ProrationRate  decimal.Decimal // percent, [0,100]; 100 when proration is off

	// Derived by Derive(). Not independently mutable.
	AmountJPY         decimal.Decimal
	WithholdingAmount decimal.Decimal
	AmountProrated    decimal.Decimal
	FiscalYear        int

	CreatedAt time.Time
}

// =============================================================================
// DEFAULT CATEGORIES
// =============================================================================
// Seed categories for a new book. The per-user allow-list itself lives in
// the store; these are the initial contents.

var DefaultIncomeCategories = []string{
	"報酬", "給与", "その他収入",
}

var DefaultExpenseCategories = []string{
	"通信費", "交通費", "消耗品費", "接待交際費", "地代家賃",
	"水道光熱費", "広告宣伝費", "新聞図書費", "支払手数料", "その他経費",
}

// DefaultCategories returns the seed list for a record type.
func DefaultCategories(t Type) []string {
	if t == Income {
		return DefaultIncomeCategories
	}
	return DefaultExpenseCategories
}
