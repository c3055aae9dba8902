package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Morisan51/chonaikai-kaikei/pkg/aggregate"
	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// barCells is the width of a 100% category bar.
const barCells = 20

// yen formats an amount as ¥1,234. Negative amounts are marked with ▲.
func yen(amount int64) string {
	if amount < 0 {
		return "▲¥" + humanize.Comma(-amount)
	}
	return "¥" + humanize.Comma(amount)
}

// bar renders a category bar proportional to percent.
// Percentages outside 0..100 are clamped.
func bar(percent int) string {
	percent = max(0, min(percent, 100))
	cells := percent * barCells / 100
	if percent > 0 && cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printTransactions writes transactions as a table.
func printTransactions(w io.Writer, txs []ledger.Transaction) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\t日付\t種別\tカテゴリ\t金額\tメモ")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, tx.Type.Label(), tx.Category, yen(tx.Amount), tx.Note)
	}
	return tw.Flush()
}

// printBalance writes the income, expense and net totals.
func printBalance(w io.Writer, b aggregate.Balance) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "収入合計\t%s\n", yen(b.IncomeTotal))
	fmt.Fprintf(tw, "支出合計\t%s\n", yen(b.ExpenseTotal))
	fmt.Fprintf(tw, "差引残高\t%s\n", yen(b.Net))
	return tw.Flush()
}

// printMonthly writes the monthly summary table.
func printMonthly(w io.Writer, months []aggregate.MonthlySummary) error {
	if len(months) == 0 {
		_, err := fmt.Fprintln(w, "データがありません")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "月\t収入\t支出\t差引")
	for _, m := range months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Month, yen(m.Income), yen(m.Expense), yen(m.Net))
	}
	return tw.Flush()
}

// printBreakdown writes a ranked category breakdown with bars.
func printBreakdown(w io.Writer, c aggregate.CategoryBreakdown) error {
	fmt.Fprintf(w, "[%s]\n", c.Type.Label())
	if c.NoData() {
		_, err := fmt.Fprintln(w, "データがありません")
		return err
	}

	tw := newTabWriter(w)
	for _, row := range c.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Category, yen(row.Amount), bar(row.BarWidthPercent))
	}
	return tw.Flush()
}

// printSummary writes every derived view of a snapshot.
func printSummary(w io.Writer, snap book.Snapshot) error {
	fmt.Fprintln(w, "=== 収支 ===")
	if err := printBalance(w, snap.Balance); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== 月別 ===")
	if err := printMonthly(w, snap.Monthly); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== カテゴリ別 ===")
	if err := printBreakdown(w, snap.IncomeBreakdown); err != nil {
		return err
	}
	return printBreakdown(w, snap.ExpenseBreakdown)
}
