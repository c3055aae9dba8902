// Package aggregate computes balances and summaries from a snapshot of
// transactions. All functions are pure: they never modify their input and
// keep no state between calls.
package aggregate

import (
	"math"
	"sort"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// Balance represents income and expense totals and their difference.
type Balance struct {
	IncomeTotal  int64 `json:"income_total"`
	ExpenseTotal int64 `json:"expense_total"`
	Net          int64 `json:"net"`
}

// IsNegative reports whether expenses exceed income.
// Callers display a negative net distinctly.
func (b Balance) IsNegative() bool {
	return b.Net < 0
}

// MonthlySummary represents income and expense totals for one YYYY-MM bucket.
type MonthlySummary struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Net     int64  `json:"net"`
}

// CategoryAmount represents the total of one category with its bar width
// relative to the largest category.
type CategoryAmount struct {
	Category        string `json:"category"`
	Amount          int64  `json:"amount"`
	BarWidthPercent int    `json:"bar_width_percent"`
}

// CategoryBreakdown is the ranked category summary for one transaction type.
// Rows is nil when no transaction of that type exists.
type CategoryBreakdown struct {
	Type ledger.Type
	Rows []CategoryAmount
}

// NoData reports whether the breakdown has nothing to show.
func (c CategoryBreakdown) NoData() bool {
	return len(c.Rows) == 0
}

// ComputeBalance sums income and expense amounts.
// Transactions of an unknown type are ignored.
func ComputeBalance(txs []ledger.Transaction) Balance {
	var b Balance
	for _, tx := range txs {
		switch tx.Type {
		case ledger.Income:
			b.IncomeTotal += tx.Amount
		case ledger.Expense:
			b.ExpenseTotal += tx.Amount
		}
	}
	b.Net = b.IncomeTotal - b.ExpenseTotal
	return b
}

// ComputeMonthly groups transactions by month and returns one summary per
// month that has at least one income or expense transaction, newest month
// first. Transactions of an unknown type are ignored.
func ComputeMonthly(txs []ledger.Transaction) []MonthlySummary {
	groups := make(map[string]*MonthlySummary)
	for _, tx := range txs {
		if !tx.Type.Valid() {
			continue
		}
		key := tx.MonthKey()
		m, ok := groups[key]
		if !ok {
			m = &MonthlySummary{Month: key}
			groups[key] = m
		}

		switch tx.Type {
		case ledger.Income:
			m.Income += tx.Amount
		case ledger.Expense:
			m.Expense += tx.Amount
		}
	}

	result := make([]MonthlySummary, 0, len(groups))
	for _, m := range groups {
		m.Net = m.Income - m.Expense
		result = append(result, *m)
	}

	// YYYY-MM is fixed width, so string order is chronological.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month > result[j].Month
	})

	return result
}

// ComputeCategoryBreakdown sums the amounts of typ per category, largest
// first. Categories with equal totals keep the order in which they were
// first seen.
func ComputeCategoryBreakdown(txs []ledger.Transaction, typ ledger.Type) CategoryBreakdown {
	breakdown := CategoryBreakdown{Type: typ}

	index := make(map[string]int)
	var rows []CategoryAmount
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(rows)
			index[tx.Category] = i
			rows = append(rows, CategoryAmount{Category: tx.Category})
		}
		rows[i].Amount += tx.Amount
	}

	if len(rows) == 0 {
		return breakdown
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount > rows[j].Amount
	})

	top := rows[0].Amount
	if top <= 0 {
		top = 1
	}
	for i := range rows {
		rows[i].BarWidthPercent = int(math.Round(float64(rows[i].Amount) / float64(top) * 100))
	}

	breakdown.Rows = rows
	return breakdown
}
