package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

type brokenStore struct{}

func (brokenStore) List(context.Context) ([]ledger.Transaction, error) {
	return nil, store.Wrap(store.OpList, errors.New("connection refused"))
}

func (brokenStore) Insert(context.Context, ledger.Transaction) error {
	return store.Wrap(store.OpInsert, errors.New("connection refused"))
}

func (brokenStore) DeleteByID(context.Context, string) error {
	return store.Wrap(store.OpDelete, errors.New("connection refused"))
}

func newTestServer(t *testing.T, s store.Store) *httptest.Server {
	t.Helper()

	b := book.New(s, ledger.NewFactory(ledger.DefaultVocabulary()))
	server := httptest.NewServer(NewRouter(b, RouterConfig{}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, store.NewMemory())

	resp := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategories(t *testing.T) {
	server := newTestServer(t, store.NewMemory())

	resp := doJSON(t, http.MethodGet, server.URL+"/api/1/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string][]string
	decode(t, resp, &got)
	assert.Contains(t, got["income"], "町内会費")
	assert.Contains(t, got["expense"], "行事費")
}

func TestTransactionFlow(t *testing.T) {
	server := newTestServer(t, store.NewMemory())
	base := server.URL + "/api/1"

	resp := doJSON(t, http.MethodPost, base+"/transactions", map[string]interface{}{
		"date": "2025-01-10", "type": "income", "category": "町内会費", "amount": 5000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Transaction ledger.Transaction `json:"transaction"`
	}
	decode(t, resp, &created)
	assert.NotEmpty(t, created.Transaction.ID)
	assert.Equal(t, int64(5000), created.Transaction.Amount)

	resp = doJSON(t, http.MethodPost, base+"/transactions", map[string]interface{}{
		"date": "2025-01-15", "type": "expense", "category": "行事費", "amount": "３,０００円", "note": "新年会",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Transactions []ledger.Transaction `json:"transactions"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, "2025-01-15", list.Transactions[0].Date)

	resp = doJSON(t, http.MethodGet, base+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balance map[string]interface{}
	decode(t, resp, &balance)
	assert.Equal(t, float64(5000), balance["income_total"])
	assert.Equal(t, float64(3000), balance["expense_total"])
	assert.Equal(t, float64(2000), balance["net"])
	assert.Equal(t, false, balance["negative"])

	resp = doJSON(t, http.MethodGet, base+"/summary/monthly", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var monthly struct {
		Months []map[string]interface{} `json:"months"`
	}
	decode(t, resp, &monthly)
	require.Len(t, monthly.Months, 1)
	assert.Equal(t, "2025-01", monthly.Months[0]["month"])

	resp = doJSON(t, http.MethodDelete, base+"/transactions/"+created.Transaction.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, base+"/transactions/"+created.Transaction.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/balance", nil)
	decode(t, resp, &balance)
	assert.Equal(t, float64(-3000), balance["net"])
	assert.Equal(t, true, balance["negative"])
}

func TestCreateValidation(t *testing.T) {
	server := newTestServer(t, store.NewMemory())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"zero amount", map[string]interface{}{"date": "2025-01-10", "type": "income", "category": "町内会費", "amount": 0}},
		{"missing date", map[string]interface{}{"type": "income", "category": "町内会費", "amount": 100}},
		{"bad type", map[string]interface{}{"date": "2025-01-10", "type": "transfer", "category": "町内会費", "amount": 100}},
		{"decimal amount", map[string]interface{}{"date": "2025-01-10", "type": "income", "category": "町内会費", "amount": "10.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, server.URL+"/api/1/transactions", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp ErrorResponse
			decode(t, resp, &errResp)
			assert.Equal(t, "invalid_parameter", errResp.Error)
			assert.Equal(t, ledger.ErrValidation.Error(), errResp.ErrorDescription)
		})
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/1/transactions", nil)
	var list struct {
		Transactions []ledger.Transaction `json:"transactions"`
	}
	decode(t, resp, &list)
	assert.Empty(t, list.Transactions)
}

func TestPutTransaction(t *testing.T) {
	server := newTestServer(t, store.NewMemory())
	url := server.URL + "/api/1/transactions/fixed-id"
	tx := ledger.Transaction{ID: "fixed-id", Date: "2025-02-01", Type: ledger.Expense, Category: "通信費", Amount: 840}

	resp := doJSON(t, http.MethodPut, url, tx)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, url, tx)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	tx.ID = "other"
	resp = doJSON(t, http.MethodPut, url, tx)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategoryBreakdown(t *testing.T) {
	server := newTestServer(t, store.NewMemory(
		ledger.Transaction{ID: "a", Date: "2025-01-01", Type: ledger.Expense, Category: "行事費", Amount: 100},
		ledger.Transaction{ID: "b", Date: "2025-01-02", Type: ledger.Expense, Category: "通信費", Amount: 50},
	))
	base := server.URL + "/api/1/summary/categories"

	resp := doJSON(t, http.MethodGet, base+"?type=expense", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got CategoryBreakdownResponse
	decode(t, resp, &got)
	assert.False(t, got.NoData)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, 100, got.Categories[0].BarWidthPercent)
	assert.Equal(t, 50, got.Categories[1].BarWidthPercent)

	resp = doJSON(t, http.MethodGet, base+"?type=income", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = CategoryBreakdownResponse{}
	decode(t, resp, &got)
	assert.True(t, got.NoData)
	assert.Empty(t, got.Categories)

	resp = doJSON(t, http.MethodGet, base+"?type=both", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport(t *testing.T) {
	server := newTestServer(t, store.NewMemory(
		ledger.Transaction{ID: "a", Date: "2025-01-10", Type: ledger.Income, Category: "町内会費", Amount: 5000},
		ledger.Transaction{ID: "b", Date: "2025-01-15", Type: ledger.Expense, Category: "行事費", Amount: 3000, Note: "会場費, 飲食"},
	))

	resp := doJSON(t, http.MethodGet, server.URL+"/api/1/export?month=2025-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "filename*=UTF-8''")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(body[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2+5)
	assert.Equal(t, "会場費, 飲食", rows[2][4])

	resp = doJSON(t, http.MethodGet, server.URL+"/api/1/export?month=2024-12", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/1/export?month=January", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStoreUnavailable(t *testing.T) {
	server := newTestServer(t, brokenStore{})
	base := server.URL + "/api/1"

	for _, path := range []string{"/transactions", "/balance", "/summary/monthly", "/summary/categories?type=income", "/export"} {
		t.Run(path, func(t *testing.T) {
			resp := doJSON(t, http.MethodGet, base+path, nil)
			require.Equal(t, http.StatusBadGateway, resp.StatusCode)

			var errResp ErrorResponse
			decode(t, resp, &errResp)
			assert.Equal(t, "store_unavailable", errResp.Error)
		})
	}

	resp := doJSON(t, http.MethodPost, base+"/transactions", map[string]interface{}{
		"date": "2025-01-10", "type": "income", "category": "町内会費", "amount": 5000,
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	b := book.New(store.NewMemory(), ledger.NewFactory(ledger.DefaultVocabulary()))
	handler := NewRouter(b, RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodGet, "/api/1/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/1/categories", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestContentDisposition(t *testing.T) {
	got := contentDisposition("町内会計_2025-01.csv")
	assert.True(t, strings.HasPrefix(got, `attachment; filename="export.csv"; filename*=UTF-8''`))
	assert.Contains(t, got, "%E7%94%BA")
}
