/*
Package sqlite provides a SQLite-backed implementation of record.Store.

PURPOSE:
  The reference persistent store for the bookkeeping core. The engine and
  classifier only ever see the record.Store interface; this package is
  the collaborator behind it for the CLI and for anyone embedding the
  library without their own storage.

KEY TABLES:
  records:    One row per bookkeeping entry, derived fields included
  categories: Per-book category allow-list, seeded with the defaults

AMOUNT STORAGE:
  Monetary columns are stored as TEXT holding decimal strings and parsed
  back through shopspring/decimal. Aggregation happens in Go on the
  parsed decimals; SQL never does float arithmetic on money.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/records.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - record/store.go: Interface definition and aggregate contracts
  - record/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/engine"
	"github.com/eycjur/final-tax-return/record"
)

// Store implements record.Store using SQLite.
type Store struct {
	db *sql.DB
}

var _ record.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema and seeds default categories.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
		category TEXT NOT NULL,
		client TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL,
		amount_original TEXT NOT NULL,
		exchange_rate TEXT,
		withholding_tax INTEGER NOT NULL DEFAULT 0,
		withholding_amount TEXT NOT NULL DEFAULT '0',
		proration INTEGER NOT NULL DEFAULT 0,
		proration_rate TEXT NOT NULL DEFAULT '100',
		amount_jpy TEXT NOT NULL,
		amount_prorated TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Fiscal-year scans are the hot path for every aggregate.
	CREATE INDEX IF NOT EXISTS idx_records_fiscal_year
		ON records(fiscal_year);
	CREATE INDEX IF NOT EXISTS idx_records_year_type
		ON records(fiscal_year, type);
	-- Prior-year income lookback (category+client in year N-1)
	CREATE INDEX IF NOT EXISTS idx_records_lookback
		ON records(fiscal_year, type, category, client);

	CREATE TABLE IF NOT EXISTS categories (
		type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
		name TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (type, name)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.seedCategories()
}

// seedCategories inserts the default allow-list on first run.
func (s *Store) seedCategories() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seed := func(t record.Type, names []string) error {
		for i, name := range names {
			if _, err := s.db.Exec(
				`INSERT INTO categories (type, name, display_order) VALUES (?, ?, ?)`,
				string(t), name, i,
			); err != nil {
				return err
			}
		}
		return nil
	}
	if err := seed(record.Income, record.DefaultIncomeCategories); err != nil {
		return err
	}
	return seed(record.Expense, record.DefaultExpenseCategories)
}

// =============================================================================
// CATEGORY ALLOW-LIST
// =============================================================================

// Categories returns the allow-list for a record type, in display order.
func (s *Store) Categories(ctx context.Context, t record.Type) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE type = ? ORDER BY display_order, name`,
		string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AddCategory appends a category to the allow-list. Adding an existing
// name is a no-op.
func (s *Store) AddCategory(ctx context.Context, t record.Type, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (type, name, display_order)
		 VALUES (?, ?, (SELECT COALESCE(MAX(display_order), -1) + 1 FROM categories WHERE type = ?))`,
		string(t), name, string(t))
	return err
}

// =============================================================================
// CRUD
// =============================================================================

// Save upserts a record, assigning an ID when missing.
func (s *Store) Save(ctx context.Context, r *record.Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	var rate sql.NullString
	if !r.ExchangeRate.IsZero() {
		rate = sql.NullString{String: r.ExchangeRate.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, date, type, category, client, description,
			currency, amount_original, exchange_rate,
			withholding_tax, withholding_amount,
			proration, proration_rate,
			amount_jpy, amount_prorated, fiscal_year, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			type = excluded.type,
			category = excluded.category,
			client = excluded.client,
			description = excluded.description,
			currency = excluded.currency,
			amount_original = excluded.amount_original,
			exchange_rate = excluded.exchange_rate,
			withholding_tax = excluded.withholding_tax,
			withholding_amount = excluded.withholding_amount,
			proration = excluded.proration,
			proration_rate = excluded.proration_rate,
			amount_jpy = excluded.amount_jpy,
			amount_prorated = excluded.amount_prorated,
			fiscal_year = excluded.fiscal_year`,
		r.ID, r.Date, string(r.Type), r.Category, r.Client, r.Description,
		string(r.Currency), r.AmountOriginal.String(), rate,
		boolToInt(r.WithholdingTax), r.WithholdingAmount.String(),
		boolToInt(r.Proration), r.ProrationRate.String(),
		r.AmountJPY.String(), r.AmountProrated.String(), r.FiscalYear,
		r.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*record.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, record.ErrNotFound
	}
	return r, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return record.ErrNotFound
	}
	return nil
}

// List returns records matching the filter, newest date first.
func (s *Store) List(ctx context.Context, f record.Filter) ([]*record.Record, error) {
	query := selectColumns + ` FROM records WHERE 1=1`
	var args []any

	if f.FiscalYear != 0 {
		query += ` AND fiscal_year = ?`
		args = append(args, f.FiscalYear)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Client != "" {
		query += ` AND client = ?`
		args = append(args, f.Client)
	}
	if f.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		query += ` AND date <= ?`
		args = append(args, f.DateTo)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// =============================================================================
// AGGREGATES
// =============================================================================
// Rows are filtered in SQL; the decimal sums themselves happen in Go so
// money never passes through REAL.

func (s *Store) Summary(ctx context.Context, fiscalYear int) (record.Summary, error) {
	sum := record.Summary{
		TotalIncome:      decimal.Zero,
		TotalExpense:     decimal.Zero,
		TotalWithholding: decimal.Zero,
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, amount_jpy, amount_prorated, withholding_amount
		 FROM records WHERE fiscal_year = ?`, fiscalYear)
	if err != nil {
		return sum, err
	}
	defer rows.Close()

	for rows.Next() {
		var typ, jpy, prorated, withholding string
		if err := rows.Scan(&typ, &jpy, &prorated, &withholding); err != nil {
			return sum, err
		}
		if record.Type(typ) == record.Income {
			sum.TotalIncome = sum.TotalIncome.Add(mustDecimal(jpy))
			sum.TotalWithholding = sum.TotalWithholding.Add(mustDecimal(withholding))
		} else {
			sum.TotalExpense = sum.TotalExpense.Add(mustDecimal(prorated))
		}
	}
	if err := rows.Err(); err != nil {
		return sum, err
	}
	sum.NetIncome = sum.TotalIncome.Sub(sum.TotalExpense)
	return sum, nil
}

func (s *Store) CategoryTotals(ctx context.Context, fiscalYear int, t record.Type) ([]record.CategoryTotal, error) {
	amountCol := "amount_jpy"
	if t == record.Expense {
		amountCol = "amount_prorated"
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, `+amountCol+` FROM records WHERE fiscal_year = ? AND type = ?`,
		fiscalYear, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]*record.CategoryTotal)
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		ct, ok := totals[category]
		if !ok {
			ct = &record.CategoryTotal{Category: category, Total: decimal.Zero}
			totals[category] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(mustDecimal(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]record.CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		result = append(result, *ct)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

func (s *Store) ClientTotals(ctx context.Context, fiscalYear int) ([]record.ClientTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT client, amount_jpy, withholding_amount
		 FROM records WHERE fiscal_year = ? AND type = 'income' AND client != ''`,
		fiscalYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]*record.ClientTotal)
	for rows.Next() {
		var client, jpy, withholding string
		if err := rows.Scan(&client, &jpy, &withholding); err != nil {
			return nil, err
		}
		ct, ok := totals[client]
		if !ok {
			ct = &record.ClientTotal{
				Client:           client,
				TotalIncome:      decimal.Zero,
				TotalWithholding: decimal.Zero,
			}
			totals[client] = ct
		}
		ct.Count++
		ct.TotalIncome = ct.TotalIncome.Add(mustDecimal(jpy))
		ct.TotalWithholding = ct.TotalWithholding.Add(mustDecimal(withholding))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]record.ClientTotal, 0, len(totals))
	for _, ct := range totals {
		result = append(result, *ct)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalIncome.Equal(result[j].TotalIncome) {
			return result[i].TotalIncome.GreaterThan(result[j].TotalIncome)
		}
		return result[i].Client < result[j].Client
	})
	return result, nil
}

func (s *Store) MonthlyTotals(ctx context.Context, fiscalYear int) ([]record.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT substr(date, 1, 7), type, amount_jpy, amount_prorated
		 FROM records WHERE fiscal_year = ?`, fiscalYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]*record.MonthlyTotal)
	for rows.Next() {
		var month, typ, jpy, prorated string
		if err := rows.Scan(&month, &typ, &jpy, &prorated); err != nil {
			return nil, err
		}
		mt, ok := totals[month]
		if !ok {
			mt = &record.MonthlyTotal{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
			totals[month] = mt
		}
		if record.Type(typ) == record.Income {
			mt.Income = mt.Income.Add(mustDecimal(jpy))
		} else {
			mt.Expense = mt.Expense.Add(mustDecimal(prorated))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]record.MonthlyTotal, 0, len(totals))
	for _, mt := range totals {
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

func (s *Store) HasIncome(ctx context.Context, category, client string, fiscalYear int) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM records
		WHERE fiscal_year = ? AND type = 'income' AND category = ?`
	args := []any{fiscalYear, category}
	if client != "" {
		query += ` AND client = ?`
		args = append(args, client)
	}
	query += `)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT fiscal_year FROM records ORDER BY fiscal_year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

const selectColumns = `SELECT
	id, date, type, category, client, description,
	currency, amount_original, exchange_rate,
	withholding_tax, withholding_amount,
	proration, proration_rate,
	amount_jpy, amount_prorated, fiscal_year, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*record.Record, error) {
	var (
		r                                    record.Record
		typ, currency                        string
		amountOriginal                       string
		rate                                 sql.NullString
		withholdingTax, proration            int
		withholdingAmount, prorationRate     string
		amountJPY, amountProrated, createdAt string
	)
	err := row.Scan(
		&r.ID, &r.Date, &typ, &r.Category, &r.Client, &r.Description,
		&currency, &amountOriginal, &rate,
		&withholdingTax, &withholdingAmount,
		&proration, &prorationRate,
		&amountJPY, &amountProrated, &r.FiscalYear, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.Type = record.Type(typ)
	r.Currency = engine.Currency(currency)
	r.AmountOriginal = mustDecimal(amountOriginal)
	if rate.Valid {
		r.ExchangeRate = mustDecimal(rate.String)
	}
	r.WithholdingTax = withholdingTax != 0
	r.WithholdingAmount = mustDecimal(withholdingAmount)
	r.Proration = proration != 0
	r.ProrationRate = mustDecimal(prorationRate)
	r.AmountJPY = mustDecimal(amountJPY)
	r.AmountProrated = mustDecimal(amountProrated)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
