package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 注文・Outbox・チケットをメモリで持つ
type memOrderDB struct {
	mu      sync.Mutex
	orders  []model.ServiceOrder
	outbox  []model.OutboxEvent
	tickets []model.Ticket
}

func (d *memOrderDB) Orders() repo.ServiceOrderRepository { return memOrders{d} }
func (d *memOrderDB) Outbox() repo.OutboxRepository       { return memOutbox{d} }

func (d *memOrderDB) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(d)
}

type memOrders struct{ d *memOrderDB }

func (m memOrders) Create(ctx context.Context, o model.ServiceOrder) (model.ServiceOrder, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	o.ID = int64(len(m.d.orders) + 1)
	m.d.orders = append(m.d.orders, o)
	return o, nil
}

func (m memOrders) FindByID(ctx context.Context, id int64) (model.ServiceOrder, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for _, o := range m.d.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.ServiceOrder{}, repo.ErrNotFound
}

func (m memOrders) ListAll(ctx context.Context) ([]model.ServiceOrder, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	out := make([]model.ServiceOrder, 0, len(m.d.orders))
	for i := len(m.d.orders) - 1; i >= 0; i-- {
		out = append(out, m.d.orders[i])
	}
	return out, nil
}

func (m memOrders) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for i := range m.d.orders {
		if m.d.orders[i].ID == id {
			m.d.orders[i].Status = status
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m memOrders) DeleteAll(ctx context.Context) (int64, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	n := int64(len(m.d.orders))
	m.d.orders = nil
	return n, nil
}

type memOutbox struct{ d *memOrderDB }

func (m memOutbox) Create(ctx context.Context, ev model.OutboxEvent) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	ev.ID = int64(len(m.d.outbox) + 1)
	m.d.outbox = append(m.d.outbox, ev)
	return nil
}

func (m memOutbox) ListUnprocessed(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	return nil, nil
}

func (m memOutbox) MarkProcessed(ctx context.Context, id int64) error { return nil }

func (m memOutbox) DeleteAll(ctx context.Context) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	m.d.outbox = nil
	return nil
}

type memTickets struct{ d *memOrderDB }

func (m memTickets) List(ctx context.Context) ([]model.Ticket, error) { return m.d.tickets, nil }

func (m memTickets) FindByID(ctx context.Context, id int64) (model.Ticket, error) {
	for _, t := range m.d.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Ticket{}, repo.ErrNotFound
}

func (m memTickets) Count(ctx context.Context) (int64, error) { return int64(len(m.d.tickets)), nil }

func (m memTickets) CreateBulk(ctx context.Context, ts []model.Ticket) error {
	for _, t := range ts {
		t.ID = int64(len(m.d.tickets) + 1)
		m.d.tickets = append(m.d.tickets, t)
	}
	return nil
}

type testIDs struct{}

func (testIDs) NewID() string { return "ev" }

type secretVerifier struct{}

func (secretVerifier) VerifyAdmin(token string) error {
	if token != "admin-token" {
		return errors.New("bad token")
	}
	return nil
}

func newOrderServiceEcho(t *testing.T) (*echo.Echo, *memOrderDB) {
	t.Helper()

	d := &memOrderDB{}
	orders := usecase.NewOrderServiceUsecase(d, memOrders{d}, testIDs{}, testClock{}, nil)
	tickets := usecase.NewTicketUsecase(memTickets{d})
	_, err := tickets.SeedIfEmpty(context.Background())
	require.NoError(t, err)

	e := echo.New()
	NewOrderAPIHandler(orders).RegisterRoutes(e, secretVerifier{})
	NewTicketAPIHandler(tickets).RegisterRoutes(e)
	return e, d
}

func TestOrderAPI_Create(t *testing.T) {
	e, d := newOrderServiceEcho(t)

	rec := call(t, e, http.MethodPost, "/orders", "", `{"amount":3089}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"order_id":1,"amount":3089,"status":"pending","date":"2024-03-01T12:00:00.000Z"}`,
		rec.Body.String(),
	)

	require.Len(t, d.outbox, 1)
	assert.Equal(t, model.EventOrderCreated, d.outbox[0].EventType)
	assert.JSONEq(t, `{"order_id":1,"amount":3089}`, d.outbox[0].Payload)
}

func TestOrderAPI_CreateRequiresAmount(t *testing.T) {
	e, d := newOrderServiceEcho(t)

	for _, body := range []string{`{}`, `{"amount":0}`, `{"amount":-5}`} {
		rec := call(t, e, http.MethodPost, "/orders", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Amount is required"}`, rec.Body.String())
	}
	assert.Empty(t, d.orders)
}

func TestOrderAPI_CreateRoundsAmount(t *testing.T) {
	e, d := newOrderServiceEcho(t)

	rec := call(t, e, http.MethodPost, "/orders", "", `{"amount":30.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(31), d.orders[0].Amount)

	rec = call(t, e, http.MethodPost, "/orders", "", `{"amount":30.4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(30), d.orders[1].Amount)
}

func TestOrderAPI_CreateRejectsHugeAmount(t *testing.T) {
	e, d := newOrderServiceEcho(t)

	for _, body := range []string{`{"amount":1e19}`, `{"amount":9223372036854775808}`, `{"amount":-1e300}`} {
		rec := call(t, e, http.MethodPost, "/orders", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Amount is out of range"}`, rec.Body.String())
	}
	assert.Empty(t, d.orders)
}

func TestOrderAPI_ListNewestFirst(t *testing.T) {
	e, _ := newOrderServiceEcho(t)

	_ = call(t, e, http.MethodPost, "/orders", "", `{"amount":100}`)
	_ = call(t, e, http.MethodPost, "/orders", "", `{"amount":200}`)

	rec := call(t, e, http.MethodGet, "/orders", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]model.Order](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "Order #2", got[0].Items[0].Name)
}

func TestOrderAPI_Clear(t *testing.T) {
	e, d := newOrderServiceEcho(t)
	_ = call(t, e, http.MethodPost, "/orders", "", `{"amount":100}`)

	rec := call(t, e, http.MethodDelete, "/orders/clear?secret=wrong", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, d.orders, 1)

	rec = call(t, e, http.MethodDelete, "/orders/clear?secret=admin-token", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":1}`, rec.Body.String())
	assert.Empty(t, d.orders)
	assert.Empty(t, d.outbox)
}

func TestTicketAPI(t *testing.T) {
	e, _ := newOrderServiceEcho(t)

	rec := call(t, e, http.MethodGet, "/api/tickets", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Ticket](t, rec), 4)

	rec = call(t, e, http.MethodGet, "/api/tickets/3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sport", decode[model.Ticket](t, rec).Category)

	rec = call(t, e, http.MethodGet, "/api/tickets/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Ticket not found"}`, rec.Body.String())
}

