package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"
)

const maxBodyBytes = 1 << 20

// 2xxだがボディが読めない/必須項目が無い
var ErrMalformedResponse = repo.ErrGatewayMalformed

// 2xx以外のレスポンス
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("order service returned %d", e.Code)
	}
	return fmt.Sprintf("order service returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return repo.ErrGatewayStatus
}

var _ repo.OrderGateway = (*Client)(nil)

// 注文サービスのHTTPクライアント
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid order service url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid order service url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

type createOrderRequest struct {
	Amount int64 `json:"amount"`
}

// amountはfloatで返るサーバーもある
type createOrderResponse struct {
	OrderID *int64   `json:"order_id"`
	Amount  *float64 `json:"amount"`
	Status  string   `json:"status"`
	Date    string   `json:"date"`
}

// POST /orders
// dateが無い場合は空のまま返す（呼び出し側で現在時刻を入れる）。
func (c *Client) CreateOrder(ctx context.Context, amount int64) (model.Order, error) {
	var res createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", "", createOrderRequest{Amount: amount}, &res); err != nil {
		return model.Order{}, err
	}
	if res.OrderID == nil || *res.OrderID <= 0 {
		return model.Order{}, fmt.Errorf("%w: missing order_id", ErrMalformedResponse)
	}

	o := model.Order{
		ID:     *res.OrderID,
		Amount: amount,
		Status: model.OrderStatus(res.Status),
		Date:   res.Date,
	}
	if res.Amount != nil {
		o.Amount = int64(math.Round(*res.Amount))
	}
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	return o, nil
}

// idとorder_idのどちらでも受ける
type orderRecord struct {
	ID      *int64            `json:"id"`
	OrderID *int64            `json:"order_id"`
	Amount  float64           `json:"amount"`
	Status  string            `json:"status"`
	Date    string            `json:"date"`
	Items   []model.OrderItem `json:"items"`
}

// GET /orders
// IDを持たないレコードは捨てる。
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var records []orderRecord
	if err := c.do(ctx, http.MethodGet, "/orders", "", nil, &records); err != nil {
		return nil, err
	}

	out := make([]model.Order, 0, len(records))
	for _, r := range records {
		var id int64
		switch {
		case r.ID != nil:
			id = *r.ID
		case r.OrderID != nil:
			id = *r.OrderID
		default:
			continue
		}

		o := model.Order{
			ID:     id,
			Amount: int64(math.Round(r.Amount)),
			Status: model.OrderStatus(r.Status),
			Date:   r.Date,
			Items:  r.Items,
		}
		if o.Status == "" {
			o.Status = model.OrderStatusCompleted
		}
		if len(o.Items) == 0 {
			o.Items = []model.OrderItem{model.SummaryItem(o.ID, o.Amount)}
		}
		out = append(out, o)
	}
	return out, nil
}

// DELETE /orders/clear?secret=...
func (c *Client) ClearOrders(ctx context.Context, secret string) error {
	q := url.Values{}
	q.Set("secret", secret)
	return c.do(ctx, http.MethodDelete, "/orders/clear", q.Encode(), nil, nil)
}

type ticketRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Venue       string  `json:"venue"`
	Available   int64   `json:"available"`
}

// GET /api/tickets
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var records []ticketRecord
	if err := c.do(ctx, http.MethodGet, "/api/tickets", "", nil, &records); err != nil {
		return nil, err
	}

	out := make([]model.Ticket, 0, len(records))
	for _, r := range records {
		out = append(out, model.Ticket{
			ID:          r.ID,
			Name:        r.Name,
			Price:       int64(math.Round(r.Price)),
			Description: r.Description,
			Category:    r.Category,
			Date:        r.Date,
			Venue:       r.Venue,
			Available:   r.Available,
		})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, rawQuery string, in any, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = rawQuery

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
