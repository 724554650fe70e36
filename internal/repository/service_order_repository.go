package repository

import (
	"context"

	"ticketstore/internal/domain/model"
)

type ServiceOrderRepository interface {
	Create(ctx context.Context, order model.ServiceOrder) (model.ServiceOrder, error)
	FindByID(ctx context.Context, orderID int64) (model.ServiceOrder, error)
	// 新しい順
	ListAll(ctx context.Context) ([]model.ServiceOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	DeleteAll(ctx context.Context) (int64, error)
}
