package repository

import (
	"context"

	"ticketstore/internal/domain/model"
)

type OutboxRepository interface {
	Create(ctx context.Context, ev model.OutboxEvent) error
	// 未送信を古い順にlimit件
	ListUnprocessed(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
