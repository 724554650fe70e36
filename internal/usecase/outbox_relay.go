package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

const defaultOutboxBatch = 100

// キューへの送信先
type EventPublisher interface {
	Publish(ctx context.Context, msg model.QueueMessage) error
}

// OutboxRelay は未送信のOutboxをキューへ流し、送れたものだけ処理済みにする。
type OutboxRelay struct {
	outbox    repo.OutboxRepository
	publisher EventPublisher
	batch     int
	log       *zap.Logger
}

func NewOutboxRelay(outbox repo.OutboxRepository, publisher EventPublisher, batch int, log *zap.Logger) *OutboxRelay {
	if batch <= 0 {
		batch = defaultOutboxBatch
	}
	return &OutboxRelay{outbox: outbox, publisher: publisher, batch: batch, log: logger.OrNop(log)}
}

// RelayOnce は1回分を処理して送信件数を返す。
// 送信に失敗したら止める（順番を崩さないため次回に回す）。
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.outbox.ListUnprocessed(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("list outbox: %w", err)
	}

	sent := 0
	for _, ev := range events {
		msg := model.QueueMessage{EventType: ev.EventType, Payload: json.RawMessage(ev.Payload)}
		if !json.Valid(msg.Payload) {
			r.log.Error("outbox payload is not json, skipping", zap.Int64("outbox_id", ev.ID))
			if err := r.outbox.MarkProcessed(ctx, ev.ID); err != nil {
				return sent, fmt.Errorf("mark outbox %d: %w", ev.ID, err)
			}
			continue
		}

		if err := r.publisher.Publish(ctx, msg); err != nil {
			return sent, fmt.Errorf("publish outbox %d: %w", ev.ID, err)
		}
		if err := r.outbox.MarkProcessed(ctx, ev.ID); err != nil {
			return sent, fmt.Errorf("mark outbox %d: %w", ev.ID, err)
		}
		sent++

		r.log.Info("outbox event published",
			zap.Int64("outbox_id", ev.ID),
			zap.String("event_id", ev.EventID),
			zap.String("event_type", ev.EventType),
		)
	}
	return sent, nil
}

// Run はctxが終わるまでintervalごとにRelayOnceを回す。
func (r *OutboxRelay) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil {
			r.log.Warn("outbox relay failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
