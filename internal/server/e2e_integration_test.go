//go:build integration

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/handler"
	"ticketstore/internal/infra/db"
	"ticketstore/internal/infra/ids"
	"ticketstore/internal/infra/orderapi"
	infraRepo "ticketstore/internal/infra/repository"
	"ticketstore/internal/infra/storage"
	"ticketstore/internal/infra/token"
	repo "ticketstore/internal/repository"
	"ticketstore/internal/testutil"
	"ticketstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const e2eAdminSecret = "e2e-secret"

type e2eIDs struct{}

func (e2eIDs) NewID() string { return uuid.NewString() }

type e2eClock struct{}

func (e2eClock) Now() time.Time { return time.Now() }

// cookieを保持するクライアント（1プロファイル相当）
type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T, baseURL string) *TestClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

func (c *TestClient) Do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode < 300 && res.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func startOrderService(t *testing.T) *httptest.Server {
	t.Helper()

	gdb, err := db.Connect(testutil.StartPostgres(t))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	orders := usecase.NewOrderServiceUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewServiceOrderGormRepository(gdb),
		e2eIDs{}, e2eClock{}, nil,
	)
	tickets := usecase.NewTicketUsecase(infraRepo.NewTicketGormRepository(gdb))
	_, err = tickets.SeedIfEmpty(context.Background())
	require.NoError(t, err)

	e := New(nil)
	RegisterOrderService(e, OrderServiceRoutes{
		Orders:  orders,
		Tickets: tickets,
		Admin:   token.NewAdminTokens(e2eAdminSecret, 0),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func startStorefront(t *testing.T, orderServiceURL string) *httptest.Server {
	t.Helper()

	gateway, err := orderapi.NewClient(orderServiceURL, &http.Client{Timeout: 2 * time.Second})
	require.NoError(t, err)

	base := storage.NewMemoryStore()
	sf := usecase.NewStorefront(usecase.StorefrontDeps{
		Scope: func(profileID string) repo.KeyValueStore {
			return storage.Namespaced(base, profileID)
		},
		Gateway:     gateway,
		Clock:       e2eClock{},
		LocalIDs:    ids.NewLocalOrderIDs(),
		AdminTokens: token.NewAdminTokens(e2eAdminSecret, 0),
		FeePercent:  3,
	})

	e := New(nil)
	RegisterStorefront(e, StorefrontRoutes{
		Storefront: sf,
		Catalog:    usecase.NewCatalogUsecase(gateway, nil),
		Profiles:   ids.Profiles{},
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestE2E_CheckoutReceiptsAndClear(t *testing.T) {
	orderSrv := startOrderService(t)
	shop := NewTestClient(t, startStorefront(t, orderSrv.URL).URL)

	var tickets []model.Ticket
	require.Equal(t, http.StatusOK, shop.Do(t, http.MethodGet, "/tickets?sort=price_asc", nil, &tickets))
	require.Len(t, tickets, 4)

	var kino model.Ticket
	for _, tk := range tickets {
		if tk.Price == 2999 {
			kino = tk
		}
	}
	require.NotZero(t, kino.ID)

	var cart handler.CartResponse
	require.Equal(t, http.StatusOK, shop.Do(t, http.MethodPost, "/cart", map[string]int64{"ticket_id": kino.ID, "quantity": 1}, &cart))
	assert.Equal(t, int64(2999), cart.Total)

	var checkout handler.CheckoutResponse
	require.Equal(t, http.StatusCreated, shop.Do(t, http.MethodPost, "/checkout", nil, &checkout))
	assert.False(t, checkout.Degraded)
	assert.Greater(t, checkout.Order.ID, int64(0))
	assert.Equal(t, int64(3089), checkout.Order.Amount)

	var receipts handler.ReceiptsResponse
	require.Equal(t, http.StatusOK, shop.Do(t, http.MethodGet, "/receipts", nil, &receipts))
	assert.Equal(t, "merged", string(receipts.Source))
	require.Len(t, receipts.Orders, 1)
	assert.Equal(t, checkout.Order.ID, receipts.Orders[0].ID)

	require.Equal(t, http.StatusNoContent, shop.Do(t, http.MethodDelete, "/receipts", nil, nil))

	var after []model.Order
	admin := NewTestClient(t, orderSrv.URL)
	require.Equal(t, http.StatusOK, admin.Do(t, http.MethodGet, "/orders", nil, &after))
	assert.Empty(t, after)
}

func TestE2E_OrderServiceDown(t *testing.T) {
	orderSrv := startOrderService(t)
	shop := NewTestClient(t, startStorefront(t, orderSrv.URL).URL)
	orderSrv.Close()

	var cart handler.CartResponse
	require.Equal(t, http.StatusOK, shop.Do(t, http.MethodPost, "/cart", map[string]int64{"ticket_id": 1}, &cart))

	var checkout handler.CheckoutResponse
	require.Equal(t, http.StatusCreated, shop.Do(t, http.MethodPost, "/checkout", nil, &checkout))
	assert.True(t, checkout.Degraded)
	assert.Less(t, checkout.Order.ID, int64(0))
	assert.Equal(t, model.OrderStatusCompleted, checkout.Order.Status)

	var receipts handler.ReceiptsResponse
	require.Equal(t, http.StatusOK, shop.Do(t, http.MethodGet, "/receipts", nil, &receipts))
	assert.Equal(t, "local", string(receipts.Source))
	require.Len(t, receipts.Orders, 1)
	assert.Equal(t, checkout.Order.ID, receipts.Orders[0].ID)
}
