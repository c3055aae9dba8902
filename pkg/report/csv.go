// Package report renders transactions into the CSV report handed to
// spreadsheet users.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Morisan51/chonaikai-kaikei/pkg/aggregate"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// ErrEmptyInput is returned when there is nothing to export.
var ErrEmptyInput = errors.New("出力するデータがありません")

// AllMonths is the month selection token that keeps every transaction.
const AllMonths = "all"

// bom makes spreadsheet tools detect UTF-8.
var bom = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"日付", "種別", "カテゴリ", "金額", "メモ"}

// Document is a rendered report ready to be downloaded or written to disk.
type Document struct {
	FileName string
	Content  []byte
}

// ToCSV renders transactions as a CSV report, oldest first, followed by a
// blank row and income/expense/net summary rows computed over the same
// transactions. label is only used for the file name.
func ToCSV(txs []ledger.Transaction, label string) (*Document, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyInput
	}

	var buf bytes.Buffer
	buf.Write(bom)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	records := make([][]string, 0, len(txs)+5)
	records = append(records, header)
	for _, tx := range ledger.SortOldestFirst(txs) {
		records = append(records, []string{
			tx.Date,
			tx.Type.Label(),
			tx.Category,
			strconv.FormatInt(tx.Amount, 10),
			tx.Note,
		})
	}

	balance := aggregate.ComputeBalance(txs)
	records = append(records,
		[]string{"", "", "", "", ""},
		summaryRow("収入合計", balance.IncomeTotal),
		summaryRow("支出合計", balance.ExpenseTotal),
		summaryRow("差引残高", balance.Net),
	)

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return &Document{
		FileName: FileName(label),
		Content:  buf.Bytes(),
	}, nil
}

func summaryRow(label string, amount int64) []string {
	return []string{"", "", label, strconv.FormatInt(amount, 10), ""}
}

// SelectMonth returns the transactions of the given YYYY-MM month.
// AllMonths or an empty token selects everything.
func SelectMonth(txs []ledger.Transaction, month string) []ledger.Transaction {
	month = strings.TrimSpace(month)
	if month == "" || month == AllMonths {
		return txs
	}

	var selected []ledger.Transaction
	for _, tx := range txs {
		if tx.MonthKey() == month {
			selected = append(selected, tx)
		}
	}
	return selected
}

// LabelFor returns the default report label for a month selection.
func LabelFor(month string) string {
	month = strings.TrimSpace(month)
	if month == "" || month == AllMonths {
		return "全期間"
	}
	return month
}

// FileName returns the report file name for label.
// Characters that are unsafe in file names are replaced with '_'.
func FileName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = LabelFor(AllMonths)
	}

	label = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, label)

	return fmt.Sprintf("町内会計_%s.csv", label)
}
