package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"

	"github.com/stretchr/testify/mock"
)

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateOrder(ctx context.Context, amount int64) (model.Order, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *GatewayMock) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Order)
	return v, args.Error(1)
}

func (m *GatewayMock) ClearOrders(ctx context.Context, secret string) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

func (m *GatewayMock) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Ticket)
	return v, args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type seqLocalIDs struct{ next int64 }

func (g *seqLocalIDs) NewLocalOrderID() int64 {
	g.next--
	return g.next
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AdminToken(now time.Time) (string, error) { return s.token, s.err }

type recordingListener struct {
	mu     sync.Mutex
	counts []int64
}

func (l *recordingListener) CartCountChanged(ctx context.Context, count int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = append(l.counts, count)
}

func (l *recordingListener) last() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.counts) == 0 {
		return -1
	}
	return l.counts[len(l.counts)-1]
}

// 最小のKeyValueStore。failSetで書き込み失敗を起こせる。
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

var errStore = errors.New("store down")

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errStore
	}
	v, ok := s.data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStore
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStore
	}
	delete(s.data, key)
	return nil
}

func (s *memStore) raw(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[key])
}

func (s *memStore) put(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = []byte(value)
}

func httpStatus(err error) int {
	he, ok := AsHTTPError(err)
	if !ok {
		return 0
	}
	return he.Status
}
