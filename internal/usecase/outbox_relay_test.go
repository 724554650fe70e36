package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ticketstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOutboxRelay_PublishesAndMarks(t *testing.T) {
	ctx := context.Background()
	outbox := &OutboxRepoMock{}
	pub := &PublisherMock{}

	outbox.On("ListUnprocessed", mock.Anything, 10).Return([]model.OutboxEvent{
		{ID: 1, EventID: "a", EventType: model.EventOrderCreated, Payload: `{"order_id":1,"amount":100}`},
		{ID: 2, EventID: "b", EventType: model.EventOrderCreated, Payload: `{"order_id":2,"amount":200}`},
	}, nil)
	pub.On("Publish", mock.Anything, model.QueueMessage{
		EventType: model.EventOrderCreated,
		Payload:   json.RawMessage(`{"order_id":1,"amount":100}`),
	}).Return(nil)
	pub.On("Publish", mock.Anything, model.QueueMessage{
		EventType: model.EventOrderCreated,
		Payload:   json.RawMessage(`{"order_id":2,"amount":200}`),
	}).Return(nil)
	outbox.On("MarkProcessed", mock.Anything, int64(1)).Return(nil)
	outbox.On("MarkProcessed", mock.Anything, int64(2)).Return(nil)

	n, err := NewOutboxRelay(outbox, pub, 10, nil).RelayOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	outbox.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestOutboxRelay_StopsOnPublishFailure(t *testing.T) {
	ctx := context.Background()
	outbox := &OutboxRepoMock{}
	pub := &PublisherMock{}

	outbox.On("ListUnprocessed", mock.Anything, defaultOutboxBatch).Return([]model.OutboxEvent{
		{ID: 1, EventType: model.EventOrderCreated, Payload: `{}`},
		{ID: 2, EventType: model.EventOrderCreated, Payload: `{}`},
	}, nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()

	n, err := NewOutboxRelay(outbox, pub, 0, nil).RelayOnce(ctx)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	outbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestOutboxRelay_SkipsBrokenPayload(t *testing.T) {
	ctx := context.Background()
	outbox := &OutboxRepoMock{}
	pub := &PublisherMock{}

	outbox.On("ListUnprocessed", mock.Anything, defaultOutboxBatch).Return([]model.OutboxEvent{
		{ID: 5, EventType: model.EventOrderCreated, Payload: `{broken`},
	}, nil)
	outbox.On("MarkProcessed", mock.Anything, int64(5)).Return(nil)

	n, err := NewOutboxRelay(outbox, pub, 0, nil).RelayOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOutboxRelay_RunStopsWithContext(t *testing.T) {
	outbox := &OutboxRepoMock{}
	outbox.On("ListUnprocessed", mock.Anything, defaultOutboxBatch).Return([]model.OutboxEvent{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewOutboxRelay(outbox, &PublisherMock{}, 0, nil).Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
	outbox.AssertCalled(t, "ListUnprocessed", mock.Anything, defaultOutboxBatch)
}
