/*
Package report renders per-year tax-return views over a record.Store.

PURPOSE:
  Turns the stored book into the artifacts a sole proprietor actually
  files from: the 確定申告用 CSV with its summary and breakdown sections,
  and the business-income classification of each income category.

CSV LAYOUT:
  1. サマリー（確定申告書転記用）  totals to copy onto the return
  2. 経費内訳（勘定科目別）        prorated expense per account
  3. 取引先別収入（支払調書照合用） per-client income vs. withholding
  4. 収入内訳（カテゴリ別）        income per category
  5. 収入区分判定（参考）          business vs. miscellaneous per category
  6. 明細データ                   every record, date ascending

  Section titles are comment lines prefixed with "#"; a year with no
  records produces no output at all.

SEE ALSO:
  - record/store.go: The aggregate queries each section is built from
  - classify/classifier.go: The decision table behind section 5
*/
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/eycjur/final-tax-return/record"
)

// yen renders a monetary amount as whole yen for a CSV cell.
func yen(d decimal.Decimal) string {
	return d.Truncate(0).String()
}

// WriteCSV writes the tax-return CSV for one fiscal year to w.
// A year with no records writes nothing and returns nil.
func WriteCSV(ctx context.Context, w io.Writer, store record.Store, year int) error {
	records, err := store.List(ctx, record.Filter{FiscalYear: year})
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	// ===== 1. サマリー =====
	sum, err := store.Summary(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}
	fmt.Fprintf(w, "# %d年分 確定申告用データ\n", year)
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# ===== サマリー（確定申告書転記用）=====")
	fmt.Fprintln(w, "項目,金額")
	fmt.Fprintf(w, "収入金額合計,%s\n", yen(sum.TotalIncome))
	fmt.Fprintf(w, "必要経費合計,%s\n", yen(sum.TotalExpense))
	fmt.Fprintf(w, "所得金額（収入－経費）,%s\n", yen(sum.NetIncome))
	fmt.Fprintf(w, "源泉徴収税額合計,%s\n", yen(sum.TotalWithholding))
	fmt.Fprintln(w, "#")

	// ===== 2. 経費内訳 =====
	expenses, err := store.CategoryTotals(ctx, year, record.Expense)
	if err != nil {
		return fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	fmt.Fprintln(w, "# ===== 経費内訳（勘定科目別）=====")
	fmt.Fprintln(w, "勘定科目,件数,金額（按分後）")
	for _, ct := range expenses {
		fmt.Fprintf(w, "%s,%d,%s\n", ct.Category, ct.Count, yen(ct.Total))
	}
	fmt.Fprintln(w, "#")

	// ===== 3. 取引先別収入 =====
	clients, err := store.ClientTotals(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to aggregate clients: %w", err)
	}
	fmt.Fprintln(w, "# ===== 取引先別収入（支払調書照合用）=====")
	fmt.Fprintln(w, "取引先,件数,収入金額,源泉徴収税額")
	for _, ct := range clients {
		fmt.Fprintf(w, "%s,%d,%s,%s\n", ct.Client, ct.Count, yen(ct.TotalIncome), yen(ct.TotalWithholding))
	}
	fmt.Fprintln(w, "#")

	// ===== 4. 収入内訳 =====
	income, err := store.CategoryTotals(ctx, year, record.Income)
	if err != nil {
		return fmt.Errorf("failed to aggregate income: %w", err)
	}
	fmt.Fprintln(w, "# ===== 収入内訳（カテゴリ別）=====")
	fmt.Fprintln(w, "カテゴリ,件数,金額")
	for _, ct := range income {
		fmt.Fprintf(w, "%s,%d,%s\n", ct.Category, ct.Count, yen(ct.Total))
	}
	fmt.Fprintln(w, "#")

	// ===== 5. 収入区分判定 =====
	classifications, err := ClassifyIncome(ctx, store, year)
	if err != nil {
		return fmt.Errorf("failed to classify income: %w", err)
	}
	fmt.Fprintln(w, "# ===== 収入区分判定（参考）=====")
	fmt.Fprintln(w, "カテゴリ,年間収入,区分,判定ルール")
	for _, c := range classifications {
		kind := "雑所得"
		if c.Business {
			kind = "事業所得"
		}
		fmt.Fprintf(w, "%s,%s,%s,%s\n", c.Category, yen(c.AnnualIncome), kind, c.Rule)
	}
	fmt.Fprintln(w, "#")

	// ===== 6. 明細データ =====
	fmt.Fprintln(w, "# ===== 明細データ =====")
	return writeDetail(w, records)
}

// writeDetail renders every record as a CSV row, oldest first.
func writeDetail(w io.Writer, records []*record.Record) error {
	sorted := make([]*record.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	cw := csv.NewWriter(w)
	header := []string{
		"日付", "種別", "勘定科目", "取引先", "摘要", "通貨",
		"金額(原通貨)", "TTM", "金額(円)", "源泉徴収有無", "源泉徴収税額",
		"按分率(%)", "按分後金額",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range sorted {
		typ := "収入"
		if r.Type == record.Expense {
			typ = "経費"
		}
		withheld := ""
		if r.WithholdingTax {
			withheld = "あり"
		}
		ttm := ""
		if !r.ExchangeRate.IsZero() {
			ttm = r.ExchangeRate.String()
		}
		row := []string{
			r.Date, typ, r.Category, r.Client, r.Description, string(r.Currency),
			r.AmountOriginal.String(), ttm, yen(r.AmountJPY), withheld,
			yen(r.WithholdingAmount), r.ProrationRate.String(), yen(r.AmountProrated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
