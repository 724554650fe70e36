package usecase

import (
	"context"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"

	"github.com/stretchr/testify/mock"
)

type ServiceOrderRepoMock struct{ mock.Mock }

func (m *ServiceOrderRepoMock) Create(ctx context.Context, order model.ServiceOrder) (model.ServiceOrder, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(model.ServiceOrder), args.Error(1)
}

func (m *ServiceOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.ServiceOrder, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.ServiceOrder), args.Error(1)
}

func (m *ServiceOrderRepoMock) ListAll(ctx context.Context) ([]model.ServiceOrder, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.ServiceOrder)
	return v, args.Error(1)
}

func (m *ServiceOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *ServiceOrderRepoMock) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type OutboxRepoMock struct{ mock.Mock }

func (m *OutboxRepoMock) Create(ctx context.Context, ev model.OutboxEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *OutboxRepoMock) ListUnprocessed(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]model.OutboxEvent)
	return v, args.Error(1)
}

func (m *OutboxRepoMock) MarkProcessed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OutboxRepoMock) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type TicketRepoMock struct{ mock.Mock }

func (m *TicketRepoMock) List(ctx context.Context) ([]model.Ticket, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Ticket)
	return v, args.Error(1)
}

func (m *TicketRepoMock) FindByID(ctx context.Context, ticketID int64) (model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).(model.Ticket), args.Error(1)
}

func (m *TicketRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TicketRepoMock) CreateBulk(ctx context.Context, tickets []model.Ticket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, msg model.QueueMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// fnをそのまま呼ぶだけのTx（commit/rollbackは呼び出し結果で見る）
type fakeTx struct {
	orders repo.ServiceOrderRepository
	outbox repo.OutboxRepository
	calls  int
}

func (f *fakeTx) Orders() repo.ServiceOrderRepository { return f.orders }
func (f *fakeTx) Outbox() repo.OutboxRepository       { return f.outbox }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	f.calls++
	return fn(f)
}

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }
