/*
csv_test.go - Tax-return CSV rendering tests

Builds small books in the in-memory store and checks the rendered
sections line by line.
*/
package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eycjur/final-tax-return/classify"
	"github.com/eycjur/final-tax-return/engine"
	"github.com/eycjur/final-tax-return/record"
	"github.com/eycjur/final-tax-return/record/store"
	"github.com/eycjur/final-tax-return/report"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func save(t *testing.T, s record.Store, r *record.Record) {
	t.Helper()
	require.NoError(t, r.Derive())
	require.NoError(t, s.Save(context.Background(), r))
}

// seedBook builds the book used by the section tests.
//
// 2025: income 原稿料 600,000 (withheld) from 出版社A
//       income 講演料 100,000 from 放送局B
//       expense 通信費 10,000 prorated 50%
// 2024: income 原稿料 200,000 from 出版社A (prior-year history)
func seedBook(t *testing.T) record.Store {
	t.Helper()
	s := store.NewMemory()
	save(t, s, &record.Record{
		Date: "2025-01-15", Type: record.Income, Category: "原稿料",
		Client: "出版社A", Currency: engine.JPY,
		AmountOriginal: dec("600000"), WithholdingTax: true,
	})
	save(t, s, &record.Record{
		Date: "2025-03-10", Type: record.Income, Category: "講演料",
		Client: "放送局B", Currency: engine.JPY,
		AmountOriginal: dec("100000"),
	})
	save(t, s, &record.Record{
		Date: "2025-02-01", Type: record.Expense, Category: "通信費",
		Description: "自宅回線", Currency: engine.JPY,
		AmountOriginal: dec("10000"), Proration: true, ProrationRate: dec("50"),
	})
	save(t, s, &record.Record{
		Date: "2024-11-05", Type: record.Income, Category: "原稿料",
		Client: "出版社A", Currency: engine.JPY,
		AmountOriginal: dec("200000"),
	})
	return s
}

func TestWriteCSV_Sections(t *testing.T) {
	s := seedBook(t)
	var buf bytes.Buffer

	require.NoError(t, report.WriteCSV(context.Background(), &buf, s, 2025))
	out := buf.String()
	lines := strings.Split(out, "\n")

	// GIVEN the seeded 2025 book
	// THEN the file opens with the year header
	assert.Equal(t, "# 2025年分 確定申告用データ", lines[0])

	// AND the summary carries the return-sheet totals
	// (income 700,000; prorated expense 5,000; withholding on 600,000)
	assert.Contains(t, out, "# ===== サマリー（確定申告書転記用）=====")
	assert.Contains(t, out, "収入金額合計,700000")
	assert.Contains(t, out, "必要経費合計,5000")
	assert.Contains(t, out, "所得金額（収入－経費）,695000")
	assert.Contains(t, out, "源泉徴収税額合計,61260")

	// AND each breakdown section is present with its rows
	assert.Contains(t, out, "# ===== 経費内訳（勘定科目別）=====")
	assert.Contains(t, out, "通信費,1,5000")
	assert.Contains(t, out, "# ===== 取引先別収入（支払調書照合用）=====")
	assert.Contains(t, out, "出版社A,1,600000,61260")
	assert.Contains(t, out, "放送局B,1,100000,0")
	assert.Contains(t, out, "# ===== 収入内訳（カテゴリ別）=====")
	assert.Contains(t, out, "原稿料,1,600000")
	assert.Contains(t, out, "# ===== 収入区分判定（参考）=====")
	assert.Contains(t, out, "原稿料,600000,事業所得,likely_business_category")
	assert.Contains(t, out, "講演料,100000,雑所得,likely_business_category")
	assert.Contains(t, out, "# ===== 明細データ =====")
}

func TestWriteCSV_DetailRowsAscending(t *testing.T) {
	s := seedBook(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(context.Background(), &buf, s, 2025))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	start := -1
	for i, line := range lines {
		if line == "# ===== 明細データ =====" {
			start = i
			break
		}
	}
	require.Positive(t, start)

	// Header then three rows, oldest date first, prior years excluded.
	require.Len(t, lines[start+1:], 4)
	assert.Equal(t, "日付,種別,勘定科目,取引先,摘要,通貨,金額(原通貨),TTM,金額(円),源泉徴収有無,源泉徴収税額,按分率(%),按分後金額", lines[start+1])
	assert.Equal(t, "2025-01-15,収入,原稿料,出版社A,,JPY,600000,,600000,あり,61260,100,600000", lines[start+2])
	assert.Equal(t, "2025-02-01,経費,通信費,,自宅回線,JPY,10000,,10000,,0,50,5000", lines[start+3])
	assert.Equal(t, "2025-03-10,収入,講演料,放送局B,,JPY,100000,,100000,,0,100,100000", lines[start+4])
}

func TestWriteCSV_ForeignCurrencyRow(t *testing.T) {
	s := store.NewMemory()
	save(t, s, &record.Record{
		Date: "2025-06-01", Type: record.Income, Category: "報酬",
		Client: "Acme Inc", Currency: engine.USD,
		AmountOriginal: dec("1000"), ExchangeRate: dec("150.25"),
	})

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(context.Background(), &buf, s, 2025))

	// Original amount and TTM survive; the yen column is the converted amount.
	assert.Contains(t, buf.String(), "2025-06-01,収入,報酬,Acme Inc,,USD,1000,150.25,150250,,0,100,150250")
}

func TestWriteCSV_EmptyYearWritesNothing(t *testing.T) {
	s := seedBook(t)
	var buf bytes.Buffer

	require.NoError(t, report.WriteCSV(context.Background(), &buf, s, 2030))
	assert.Zero(t, buf.Len())
}

func TestClassifyIncome(t *testing.T) {
	s := seedBook(t)

	got, err := report.ClassifyIncome(context.Background(), s, 2025)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// 原稿料 600,000 with 2024 history clears the lowered bar.
	assert.Equal(t, "原稿料", got[0].Category)
	assert.True(t, got[0].AnnualIncome.Equal(dec("600000")))
	assert.True(t, got[0].Business)
	assert.Equal(t, classify.RuleLikelyBusiness, got[0].Rule)

	// 講演料 100,000 with no history stays miscellaneous.
	assert.Equal(t, "講演料", got[1].Category)
	assert.False(t, got[1].Business)
	assert.Equal(t, classify.RuleLikelyBusiness, got[1].Rule)
}
