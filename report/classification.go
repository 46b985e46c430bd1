/*
classification.go - Per-category business-income classification

Aggregates each income category's annual total and runs it through the
decision table, resolving prior-year history from the store.
*/
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/classify"
	"github.com/eycjur/final-tax-return/record"
)

// IncomeClassification is one income category's annual total together
// with its business-income decision.
type IncomeClassification struct {
	Category     string
	Count        int
	AnnualIncome decimal.Decimal
	Business     bool
	Rule         classify.Rule
}

// ClassifyIncome classifies every income category of a fiscal year.
// Prior-year history is checked per category across all clients; the
// result keeps the largest-first order of the category totals.
func ClassifyIncome(ctx context.Context, store record.Store, year int) ([]IncomeClassification, error) {
	totals, err := store.CategoryTotals(ctx, year, record.Income)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income: %w", err)
	}

	checker := classify.NewHistoryChecker(store)
	result := make([]IncomeClassification, 0, len(totals))
	for _, ct := range totals {
		history, err := checker.HasMultiYearHistory(ctx, ct.Category, "", year)
		if err != nil {
			return nil, fmt.Errorf("failed to check history for %s: %w", ct.Category, err)
		}
		decision := classify.Classify(ct.Category, ct.Total, history)
		result = append(result, IncomeClassification{
			Category:     ct.Category,
			Count:        ct.Count,
			AnnualIncome: ct.Total,
			Business:     decision.Business,
			Rule:         decision.Rule,
		})
	}
	return result, nil
}
