package record_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/engine"
	"github.com/eycjur/final-tax-return/record"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func incomeRecord() *record.Record {
	return &record.Record{
		Date:           "2025-03-15",
		Type:           record.Income,
		Category:       "原稿料",
		Client:         "出版社A",
		Currency:       engine.JPY,
		AmountOriginal: dec("200000"),
		WithholdingTax: true,
	}
}

func expenseRecord() *record.Record {
	return &record.Record{
		Date:           "2025-04-01",
		Type:           record.Expense,
		Category:       "通信費",
		Currency:       engine.JPY,
		AmountOriginal: dec("10000"),
		Proration:      true,
		ProrationRate:  dec("50"),
	}
}

// =============================================================================
// DERIVATION TESTS
// =============================================================================

func TestDerive_JPYIncomeWithWithholding(t *testing.T) {
	// GIVEN: A 200,000 yen payment with the withholding flag set
	// WHEN: Deriving
	// THEN: AmountJPY passes through, withholding is 10.21%, proration
	//       is the identity, fiscal year is the calendar year

	r := incomeRecord()
	if err := r.Derive(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.AmountJPY.Equal(dec("200000")) {
		t.Errorf("AmountJPY = %s, want 200000", r.AmountJPY)
	}
	if !r.WithholdingAmount.Equal(dec("20420")) {
		t.Errorf("WithholdingAmount = %s, want 20420", r.WithholdingAmount)
	}
	if !r.AmountProrated.Equal(r.AmountJPY) {
		t.Errorf("AmountProrated = %s, want AmountJPY", r.AmountProrated)
	}
	if r.FiscalYear != 2025 {
		t.Errorf("FiscalYear = %d, want 2025", r.FiscalYear)
	}
	if !r.ProrationRate.Equal(dec("100")) {
		t.Errorf("ProrationRate = %s, want 100 when proration is off", r.ProrationRate)
	}
}

func TestDerive_USDConversion(t *testing.T) {
	// GIVEN: 1,234.56 USD at TTM 150.25
	// WHEN: Deriving
	// THEN: 185,492.64 rounds to 185,493 yen

	r := incomeRecord()
	r.Currency = engine.USD
	r.AmountOriginal = dec("1234.56")
	r.ExchangeRate = dec("150.25")
	r.WithholdingTax = false

	if err := r.Derive(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.AmountJPY.Equal(dec("185493")) {
		t.Errorf("AmountJPY = %s, want 185493", r.AmountJPY)
	}
	if !r.WithholdingAmount.IsZero() {
		t.Errorf("WithholdingAmount = %s, want 0 when flag is off", r.WithholdingAmount)
	}
}

func TestDerive_ProratedExpense(t *testing.T) {
	// GIVEN: A 10,000 yen communication expense at 50% business use
	// WHEN: Deriving
	// THEN: AmountProrated is 5,000, AmountJPY stays 10,000

	r := expenseRecord()
	if err := r.Derive(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.AmountJPY.Equal(dec("10000")) {
		t.Errorf("AmountJPY = %s, want 10000", r.AmountJPY)
	}
	if !r.AmountProrated.Equal(dec("5000")) {
		t.Errorf("AmountProrated = %s, want 5000", r.AmountProrated)
	}
}

func TestDerive_Idempotent(t *testing.T) {
	// GIVEN: A derived record
	// WHEN: Deriving again from the same stored inputs
	// THEN: Every derived field lands on the same value

	r := expenseRecord()
	if err := r.Derive(); err != nil {
		t.Fatal(err)
	}
	first := *r

	if err := r.Derive(); err != nil {
		t.Fatal(err)
	}

	if !r.AmountJPY.Equal(first.AmountJPY) ||
		!r.AmountProrated.Equal(first.AmountProrated) ||
		!r.WithholdingAmount.Equal(first.WithholdingAmount) ||
		r.FiscalYear != first.FiscalYear {
		t.Errorf("derivation drifted: %+v vs %+v", first, *r)
	}
}

func TestDerive_ErrorLeavesDerivedFieldsUntouched(t *testing.T) {
	// GIVEN: A previously derived record edited into an invalid state
	// WHEN: Deriving fails
	// THEN: The old derived values are still in place (no partial result)

	r := expenseRecord()
	if err := r.Derive(); err != nil {
		t.Fatal(err)
	}
	before := r.AmountProrated

	r.ProrationRate = dec("150")
	err := r.Derive()
	if !errors.Is(err, engine.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if !r.AmountProrated.Equal(before) {
		t.Errorf("AmountProrated changed on failed derive: %s", r.AmountProrated)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*record.Record)
		want   error
	}{
		{"unknown type", func(r *record.Record) { r.Type = "transfer" }, record.ErrInvalidType},
		{"bad date", func(r *record.Record) { r.Date = "2025-13-01" }, engine.ErrInvalidDate},
		{"empty category", func(r *record.Record) { r.Category = "" }, record.ErrMissingCategory},
		{"negative amount", func(r *record.Record) { r.AmountOriginal = dec("-1") }, engine.ErrInvalidAmount},
		{"bad currency", func(r *record.Record) { r.Currency = "EUR" }, engine.ErrInvalidCurrency},
		{"usd without rate", func(r *record.Record) { r.Currency = engine.USD; r.ExchangeRate = decimal.Zero }, engine.ErrMissingRate},
		{"proration rate over 100", func(r *record.Record) { r.Proration = true; r.ProrationRate = dec("101") }, engine.ErrInvalidRate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := incomeRecord()
			c.mutate(r)
			if err := r.Validate(); !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestValidate_LengthLimitsCountRunes(t *testing.T) {
	// GIVEN: A category of exactly 50 Japanese characters, then 51
	// WHEN: Validating
	// THEN: 50 passes, 51 fails; bytes are irrelevant

	r := incomeRecord()
	r.Category = strings.Repeat("あ", record.MaxCategoryLength)
	if err := r.Validate(); err != nil {
		t.Errorf("50-rune category rejected: %v", err)
	}

	r.Category = strings.Repeat("あ", record.MaxCategoryLength+1)
	err := r.Validate()
	if !errors.Is(err, record.ErrFieldTooLong) {
		t.Errorf("expected ErrFieldTooLong, got %v", err)
	}
	var fe *record.FieldLengthError
	if !errors.As(err, &fe) || fe.Field != "category" {
		t.Errorf("expected FieldLengthError for category, got %v", err)
	}
}
