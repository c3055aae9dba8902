package aggregate

import (
	"fmt"
	"testing"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

func scenarioA() []ledger.Transaction {
	return []ledger.Transaction{
		{ID: "1", Date: "2025-01-10", Type: ledger.Income, Category: "町内会費", Amount: 5000},
		{ID: "2", Date: "2025-01-15", Type: ledger.Expense, Category: "行事費", Amount: 3000},
	}
}

func mixed() []ledger.Transaction {
	return []ledger.Transaction{
		{ID: "1", Date: "2025-03-02", Type: ledger.Expense, Category: "通信費", Amount: 800},
		{ID: "2", Date: "2024-12-20", Type: ledger.Income, Category: "繰越金", Amount: 120000},
		{ID: "3", Date: "2025-01-10", Type: ledger.Income, Category: "町内会費", Amount: 5000},
		{ID: "4", Date: "2025-03-15", Type: ledger.Expense, Category: "行事費", Amount: 45000},
		{ID: "5", Date: "2025-01-31", Type: ledger.Expense, Category: "消耗品費", Amount: 2300},
		{ID: "6", Date: "2025-03-01", Type: ledger.Income, Category: "町内会費", Amount: 7000},
		{ID: "7", Date: "2025-01-05", Type: ledger.Expense, Category: "行事費", Amount: 12000},
	}
}

func TestComputeBalance(t *testing.T) {
	t.Run("scenario A", func(t *testing.T) {
		got := ComputeBalance(scenarioA())
		expected := Balance{IncomeTotal: 5000, ExpenseTotal: 3000, Net: 2000}
		if got != expected {
			t.Errorf("ComputeBalance() = %+v, expected %+v", got, expected)
		}
		if got.IsNegative() {
			t.Error("IsNegative() = true for positive net")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := ComputeBalance(nil); got != (Balance{}) {
			t.Errorf("ComputeBalance(nil) = %+v, expected zero", got)
		}
	})

	t.Run("negative net", func(t *testing.T) {
		got := ComputeBalance([]ledger.Transaction{
			{Date: "2025-01-01", Type: ledger.Income, Amount: 1000},
			{Date: "2025-01-02", Type: ledger.Expense, Amount: 4000},
		})
		if got.Net != -3000 || !got.IsNegative() {
			t.Errorf("ComputeBalance() = %+v, expected net -3000", got)
		}
	})

	t.Run("unknown type ignored", func(t *testing.T) {
		got := ComputeBalance([]ledger.Transaction{
			{Date: "2025-01-01", Type: ledger.Income, Amount: 1000},
			{Date: "2025-01-02", Type: "transfer", Amount: 4000},
		})
		if got != (Balance{IncomeTotal: 1000, Net: 1000}) {
			t.Errorf("ComputeBalance() = %+v", got)
		}
	})
}

func TestComputeMonthly(t *testing.T) {
	t.Run("scenario A", func(t *testing.T) {
		got := ComputeMonthly(scenarioA())
		expected := []MonthlySummary{{Month: "2025-01", Income: 5000, Expense: 3000, Net: 2000}}
		if fmt.Sprint(got) != fmt.Sprint(expected) {
			t.Errorf("ComputeMonthly() = %+v, expected %+v", got, expected)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := ComputeMonthly(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("ComputeMonthly(nil) = %#v, expected empty slice", got)
		}
	})

	t.Run("newest first without gaps", func(t *testing.T) {
		got := ComputeMonthly(mixed())
		expected := []MonthlySummary{
			{Month: "2025-03", Income: 7000, Expense: 45800, Net: -38800},
			{Month: "2025-01", Income: 5000, Expense: 14300, Net: -9300},
			{Month: "2024-12", Income: 120000, Expense: 0, Net: 120000},
		}
		if fmt.Sprint(got) != fmt.Sprint(expected) {
			t.Errorf("ComputeMonthly() =\n%+v\nexpected\n%+v", got, expected)
		}
	})

	t.Run("month with only unknown types omitted", func(t *testing.T) {
		got := ComputeMonthly([]ledger.Transaction{
			{Date: "2025-02-01", Type: "transfer", Amount: 4000},
			{Date: "2025-01-10", Type: ledger.Income, Amount: 5000},
		})
		expected := []MonthlySummary{{Month: "2025-01", Income: 5000, Expense: 0, Net: 5000}}
		if fmt.Sprint(got) != fmt.Sprint(expected) {
			t.Errorf("ComputeMonthly() = %+v, expected %+v", got, expected)
		}
	})
}

func TestMonthlyMatchesBalance(t *testing.T) {
	for _, txs := range [][]ledger.Transaction{nil, scenarioA(), mixed()} {
		balance := ComputeBalance(txs)
		monthly := ComputeMonthly(txs)

		var income, expense int64
		seen := make(map[string]bool)
		for i, m := range monthly {
			income += m.Income
			expense += m.Expense
			if m.Net != m.Income-m.Expense {
				t.Errorf("month %s net = %d, expected %d", m.Month, m.Net, m.Income-m.Expense)
			}
			if seen[m.Month] {
				t.Errorf("duplicate month %s", m.Month)
			}
			seen[m.Month] = true
			if i > 0 && monthly[i-1].Month <= m.Month {
				t.Errorf("months not strictly descending: %s then %s", monthly[i-1].Month, m.Month)
			}
		}

		if income != balance.IncomeTotal || expense != balance.ExpenseTotal {
			t.Errorf("monthly totals %d/%d differ from balance %+v", income, expense, balance)
		}
		if balance.Net != balance.IncomeTotal-balance.ExpenseTotal {
			t.Errorf("balance net inconsistent: %+v", balance)
		}
	}
}

func TestComputeCategoryBreakdown(t *testing.T) {
	t.Run("scenario D", func(t *testing.T) {
		txs := []ledger.Transaction{
			{Date: "2025-01-01", Type: ledger.Expense, Category: "通信費", Amount: 50},
			{Date: "2025-01-02", Type: ledger.Expense, Category: "行事費", Amount: 100},
		}
		got := ComputeCategoryBreakdown(txs, ledger.Expense)
		expected := []CategoryAmount{
			{Category: "行事費", Amount: 100, BarWidthPercent: 100},
			{Category: "通信費", Amount: 50, BarWidthPercent: 50},
		}
		if got.NoData() {
			t.Fatal("NoData() = true")
		}
		if fmt.Sprint(got.Rows) != fmt.Sprint(expected) {
			t.Errorf("Rows = %+v, expected %+v", got.Rows, expected)
		}
	})

	t.Run("scenario B no data", func(t *testing.T) {
		got := ComputeCategoryBreakdown(nil, ledger.Income)
		if !got.NoData() || got.Rows != nil {
			t.Errorf("expected no data result, got %+v", got)
		}
		if got.Type != ledger.Income {
			t.Errorf("Type = %q", got.Type)
		}
	})

	t.Run("only other type present", func(t *testing.T) {
		got := ComputeCategoryBreakdown(scenarioA()[1:], ledger.Income)
		if !got.NoData() {
			t.Errorf("expected no data result, got %+v", got)
		}
	})

	t.Run("sums per category and rounds", func(t *testing.T) {
		got := ComputeCategoryBreakdown(mixed(), ledger.Expense)
		expected := []CategoryAmount{
			{Category: "行事費", Amount: 57000, BarWidthPercent: 100},
			{Category: "消耗品費", Amount: 2300, BarWidthPercent: 4},
			{Category: "通信費", Amount: 800, BarWidthPercent: 1},
		}
		if fmt.Sprint(got.Rows) != fmt.Sprint(expected) {
			t.Errorf("Rows = %+v, expected %+v", got.Rows, expected)
		}
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		txs := []ledger.Transaction{
			{Date: "2025-01-01", Type: ledger.Income, Category: "補助金", Amount: 300},
			{Date: "2025-01-02", Type: ledger.Income, Category: "町内会費", Amount: 300},
			{Date: "2025-01-03", Type: ledger.Income, Category: "繰越金", Amount: 900},
		}
		got := ComputeCategoryBreakdown(txs, ledger.Income)
		order := []string{"繰越金", "補助金", "町内会費"}
		for i, row := range got.Rows {
			if row.Category != order[i] {
				t.Fatalf("Rows = %+v, expected order %v", got.Rows, order)
			}
		}
		if got.Rows[1].BarWidthPercent != 33 {
			t.Errorf("BarWidthPercent = %d, expected 33", got.Rows[1].BarWidthPercent)
		}
	})

	t.Run("non-positive amounts do not panic", func(t *testing.T) {
		txs := []ledger.Transaction{
			{Date: "2025-01-01", Type: ledger.Expense, Category: "不正", Amount: 0},
		}
		got := ComputeCategoryBreakdown(txs, ledger.Expense)
		if len(got.Rows) != 1 || got.Rows[0].BarWidthPercent != 0 {
			t.Errorf("Rows = %+v", got.Rows)
		}
	})
}

func TestBreakdownOrderingProperty(t *testing.T) {
	for _, typ := range []ledger.Type{ledger.Income, ledger.Expense} {
		got := ComputeCategoryBreakdown(mixed(), typ)
		if got.NoData() {
			t.Fatalf("%s: unexpected no data", typ)
		}
		if got.Rows[0].BarWidthPercent != 100 {
			t.Errorf("%s: top entry = %d%%, expected 100%%", typ, got.Rows[0].BarWidthPercent)
		}
		for i := 1; i < len(got.Rows); i++ {
			if got.Rows[i-1].Amount < got.Rows[i].Amount {
				t.Errorf("%s: rows not descending: %+v", typ, got.Rows)
			}
		}
	}
}
