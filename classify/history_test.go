package classify_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/eycjur/final-tax-return/classify"
)

// fakeHistory records lookups and answers from a fixed table.
type fakeHistory struct {
	income map[string]bool // "category/client/year"
	asked  []string
}

func (f *fakeHistory) HasIncome(_ context.Context, category, client string, fiscalYear int) (bool, error) {
	k := key(category, client, fiscalYear)
	f.asked = append(f.asked, k)
	return f.income[k], nil
}

func key(category, client string, year int) string {
	return fmt.Sprintf("%s/%s/%d", category, client, year)
}

func TestHistoryChecker_LooksBackOneYear(t *testing.T) {
	// GIVEN: Income for 出版社A/原稿料 in 2024
	// WHEN: Checking multi-year history for fiscal year 2025
	// THEN: True, and the store was asked about 2024, not 2025

	fake := &fakeHistory{income: map[string]bool{key("原稿料", "出版社A", 2024): true}}
	checker := classify.NewHistoryChecker(fake)

	got, err := checker.HasMultiYearHistory(context.Background(), "原稿料", "出版社A", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected multi-year history")
	}
	if len(fake.asked) != 1 || fake.asked[0] != key("原稿料", "出版社A", 2024) {
		t.Errorf("asked %v, want single lookup for 2024", fake.asked)
	}
}

func TestHistoryChecker_NoPriorIncome(t *testing.T) {
	fake := &fakeHistory{income: map[string]bool{}}
	checker := classify.NewHistoryChecker(fake)

	got, err := checker.HasMultiYearHistory(context.Background(), "講演料", "放送局B", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("expected no multi-year history")
	}
}
