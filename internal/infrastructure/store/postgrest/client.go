// Package postgrest is the data-store adapter for deployments where the
// database sits behind a PostgREST-compatible data API (hosted Postgres
// platforms). Caller-scoped calls forward the caller's bearer token so the
// store's row-level security decides what is visible; admin calls use the
// service credential and bypass it.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/config"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// PostgREST's "zero rows for a single-object request" error code.
const codeNoRows = "PGRST116"

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg config.StoreConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

type createOrderArgs struct {
	CartItems []domain.OrderItem `json:"cart_items"`
}

// CreateOrder invokes the store-side create_order procedure under the
// caller's token. The procedure validates stock, computes the total and
// writes the order; its receipt carries any business rejection.
func (c *Client) CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (*domain.OrderReceipt, error) {
	req := request{
		method: http.MethodPost,
		path:   "/rest/v1/rpc/create_order",
		token:  token,
		apiKey: c.anonKey,
		body:   createOrderArgs{CartItems: items},
	}
	return send[domain.OrderReceipt](c, ctx, req)
}

// GetOrderTotal fetches the total price of a single order visible to the
// caller. Zero visible rows maps to ErrOrderNotFound.
func (c *Client) GetOrderTotal(ctx context.Context, token string, orderID string) (int64, error) {
	req := request{
		method: http.MethodGet,
		path:   "/rest/v1/orders",
		query:  url.Values{"id": {"eq." + orderID}, "select": {"total_price"}},
		token:  token,
		apiKey: c.anonKey,
		single: true,
	}

	row, err := send[struct {
		TotalPrice int64 `json:"total_price"`
	}](c, ctx, req)
	if err != nil {
		return 0, err
	}
	return row.TotalPrice, nil
}

// ListOrderDetails reads the caller's flattened order history from the
// user_order_details view; row security scopes it to the caller.
func (c *Client) ListOrderDetails(ctx context.Context, token string) ([]domain.OrderDetailRow, error) {
	req := request{
		method: http.MethodGet,
		path:   "/rest/v1/user_order_details",
		query:  url.Values{"select": {"*"}},
		token:  token,
		apiKey: c.anonKey,
	}

	rows, err := send[[]domain.OrderDetailRow](c, ctx, req)
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

// UpdateOrderStatus patches the order's status only while it is still in
// the expected state, returning the updated row. No matching row maps to
// ErrOrderNotFound: the order is absent or already past the transition.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
	req := request{
		method: http.MethodPatch,
		path:   "/rest/v1/orders",
		query: url.Values{
			"id":     {"eq." + orderID},
			"status": {"eq." + string(expected)},
			"select": {"id,status"},
		},
		token:  c.serviceKey,
		apiKey: c.serviceKey,
		body:   map[string]any{"status": next},
		prefer: "return=representation",
		single: true,
	}
	return send[domain.Order](c, ctx, req)
}

// SetOrderStatus patches the status keyed by id only. Zero matched rows is
// not an error; setting an absolute status twice is a no-op.
func (c *Client) SetOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	req := request{
		method: http.MethodPatch,
		path:   "/rest/v1/orders",
		query:  url.Values{"id": {"eq." + orderID}},
		token:  c.serviceKey,
		apiKey: c.serviceKey,
		body:   map[string]any{"status": next},
		prefer: "return=minimal",
	}

	_, err := send[json.RawMessage](c, ctx, req)
	return err
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	apiKey string
	body   any
	prefer string
	single bool
}

func send[Resp any](c *Client, ctx context.Context, req request) (*Resp, error) {
	var bodyReader io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("apikey", req.apiKey)
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}
	if req.single {
		httpReq.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var storeErrResp storeErrorResponse
		if err := json.Unmarshal(body, &storeErrResp); err != nil {
			return nil, fmt.Errorf("store returned status %d: %s", resp.StatusCode, string(body))
		}
		storeErr := &StoreError{
			Code:       storeErrResp.Code,
			Message:    storeErrResp.Message,
			StatusCode: resp.StatusCode,
		}
		if storeErr.IsNoRows() {
			return nil, application.ErrOrderNotFound
		}
		return nil, storeErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return new(Resp), nil
	}

	var storeResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&storeResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &storeResp, nil
}

var _ application.OrderStore = (*Client)(nil)
var _ application.AdminOrderStore = (*Client)(nil)

// StoreError is a structured error decoded from a non-2xx data API reply.
type StoreError struct {
	Code       string
	Message    string
	StatusCode int
}

type storeErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *StoreError) IsNoRows() bool {
	return e.Code == codeNoRows
}

func IsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	ok := errors.As(err, &storeErr)
	return storeErr, ok
}
