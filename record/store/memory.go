// Package store provides an in-memory record.Store implementation
// (for testing/dev).
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/record"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[string]*record.Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*record.Record)}
}

var _ record.Store = (*Memory)(nil)

// Save stores a copy of the record, assigning an ID when missing.
func (m *Memory) Save(_ context.Context, r *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return record.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) List(_ context.Context, f record.Filter) ([]*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*record.Record
	for _, r := range m.records {
		if !matches(r, f) {
			continue
		}
		cp := *r
		result = append(result, &cp)
	}

	// Newest date first; ties broken by creation time, newest first.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matches(r *record.Record, f record.Filter) bool {
	if f.FiscalYear != 0 && r.FiscalYear != f.FiscalYear {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Client != "" && r.Client != f.Client {
		return false
	}
	if f.DateFrom != "" && r.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && r.Date > f.DateTo {
		return false
	}
	return true
}

// =============================================================================
// AGGREGATES
// =============================================================================

func (m *Memory) Summary(_ context.Context, fiscalYear int) (record.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := record.Summary{
		TotalIncome:      decimal.Zero,
		TotalExpense:     decimal.Zero,
		TotalWithholding: decimal.Zero,
	}
	for _, r := range m.records {
		if r.FiscalYear != fiscalYear {
			continue
		}
		if r.Type == record.Income {
			s.TotalIncome = s.TotalIncome.Add(r.AmountJPY)
			s.TotalWithholding = s.TotalWithholding.Add(r.WithholdingAmount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(r.AmountProrated)
		}
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpense)
	return s, nil
}

func (m *Memory) CategoryTotals(_ context.Context, fiscalYear int, t record.Type) ([]record.CategoryTotal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]*record.CategoryTotal)
	for _, r := range m.records {
		if r.FiscalYear != fiscalYear || r.Type != t {
			continue
		}
		amount := r.AmountJPY
		if t == record.Expense {
			amount = r.AmountProrated
		}
		ct, ok := totals[r.Category]
		if !ok {
			ct = &record.CategoryTotal{Category: r.Category, Total: decimal.Zero}
			totals[r.Category] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(amount)
	}
	return sortCategoryTotals(totals), nil
}

func sortCategoryTotals(totals map[string]*record.CategoryTotal) []record.CategoryTotal {
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
	return result
}

func (m *Memory) ClientTotals(_ context.Context, fiscalYear int) ([]record.ClientTotal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]*record.ClientTotal)
	for _, r := range m.records {
		if r.FiscalYear != fiscalYear || r.Type != record.Income || r.Client == "" {
			continue
		}
		ct, ok := totals[r.Client]
		if !ok {
			ct = &record.ClientTotal{
				Client:           r.Client,
				TotalIncome:      decimal.Zero,
				TotalWithholding: decimal.Zero,
			}
			totals[r.Client] = ct
		}
		ct.Count++
		ct.TotalIncome = ct.TotalIncome.Add(r.AmountJPY)
		ct.TotalWithholding = ct.TotalWithholding.Add(r.WithholdingAmount)
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

func (m *Memory) MonthlyTotals(_ context.Context, fiscalYear int) ([]record.MonthlyTotal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]*record.MonthlyTotal)
	for _, r := range m.records {
		if r.FiscalYear != fiscalYear || len(r.Date) < 7 {
			continue
		}
		month := r.Date[:7] // YYYY-MM
		mt, ok := totals[month]
		if !ok {
			mt = &record.MonthlyTotal{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
			totals[month] = mt
		}
		if r.Type == record.Income {
			mt.Income = mt.Income.Add(r.AmountJPY)
		} else {
			mt.Expense = mt.Expense.Add(r.AmountProrated)
		}
	}

	result := make([]record.MonthlyTotal, 0, len(totals))
	for _, mt := range totals {
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.Compare(result[i].Month, result[j].Month) < 0
	})
	return result, nil
}

func (m *Memory) HasIncome(_ context.Context, category, client string, fiscalYear int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.FiscalYear != fiscalYear || r.Type != record.Income {
			continue
		}
		if r.Category != category {
			continue
		}
		if client != "" && r.Client != client {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (m *Memory) Years(_ context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[int]bool)
	for _, r := range m.records {
		seen[r.FiscalYear] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}
