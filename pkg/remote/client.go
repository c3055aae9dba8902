// Package remote implements the record store on top of the ledger HTTP API,
// so that several clients can share one server-side store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// ClientConfig represents the configuration for the remote store client.
type ClientConfig struct {
	APIURL  string
	Timeout time.Duration // Default: 30 seconds

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client is a store.Store backed by the ledger HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new remote store client.
func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(config.APIURL, "/"),
	}
}

// List implements store.Store.
func (c *Client) List(ctx context.Context) ([]ledger.Transaction, error) {
	endpoint := fmt.Sprintf("%s/api/1/transactions", c.baseURL)

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, store.Wrap(store.OpList, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, store.Wrap(store.OpList, c.parseError(resp))
	}

	var txsResp TransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&txsResp); err != nil {
		return nil, store.Wrap(store.OpList, fmt.Errorf("failed to decode response: %w", err))
	}
	if txsResp.Transactions == nil {
		txsResp.Transactions = []ledger.Transaction{}
	}

	return ledger.SortNewestFirst(txsResp.Transactions), nil
}

// Insert implements store.Store.
func (c *Client) Insert(ctx context.Context, tx ledger.Transaction) error {
	endpoint := fmt.Sprintf("%s/api/1/transactions/%s", c.baseURL, url.PathEscape(tx.ID))

	body, err := json.Marshal(tx)
	if err != nil {
		return store.Wrap(store.OpInsert, fmt.Errorf("failed to marshal transaction: %w", err))
	}

	resp, err := c.do(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return store.Wrap(store.OpInsert, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return store.ErrDuplicateID
	default:
		return store.Wrap(store.OpInsert, c.parseError(resp))
	}

	var txResp TransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&txResp); err != nil {
		return store.Wrap(store.OpInsert, fmt.Errorf("failed to decode response: %w", err))
	}
	if txResp.Transaction.ID != tx.ID {
		return store.Wrap(store.OpInsert, fmt.Errorf("server stored id %q, expected %q", txResp.Transaction.ID, tx.ID))
	}
	return nil
}

// DeleteByID implements store.Store.
func (c *Client) DeleteByID(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/api/1/transactions/%s", c.baseURL, url.PathEscape(id))

	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return store.Wrap(store.OpDelete, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return store.ErrNotFound
	}
	return store.Wrap(store.OpDelete, c.parseError(resp))
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

// parseError parses an error response from the ledger API.
func (c *Client) parseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr.Code = "failed to read error response"
		return apiErr
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		apiErr.Code = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Code = errResp.Error
	apiErr.Description = errResp.ErrorDescription
	return apiErr
}
