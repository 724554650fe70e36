package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// OrderServiceUsecase は注文サービス側（受付・一覧・一括削除・決済結果の反映）。
type OrderServiceUsecase struct {
	tx     repo.TransactionManager
	orders repo.ServiceOrderRepository
	ids    IDGenerator
	clock  Clock
	log    *zap.Logger
}

func NewOrderServiceUsecase(
	tx repo.TransactionManager,
	orders repo.ServiceOrderRepository,
	ids IDGenerator,
	clock Clock,
	log *zap.Logger,
) *OrderServiceUsecase {
	return &OrderServiceUsecase{tx: tx, orders: orders, ids: ids, clock: clock, log: logger.OrNop(log)}
}

// POST /orders のレスポンス
type CreatedOrderOutput struct {
	OrderID int64             `json:"order_id"`
	Amount  int64             `json:"amount"`
	Status  model.OrderStatus `json:"status"`
	Date    string            `json:"date"`
}

// Create は注文とorder_createdイベントを同じトランザクションで保存する。
func (u *OrderServiceUsecase) Create(ctx context.Context, amount int64) (CreatedOrderOutput, error) {
	if amount <= 0 {
		return CreatedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Amount is required")
	}

	var created model.ServiceOrder
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		o, err := r.Orders().Create(ctx, model.ServiceOrder{
			Amount:    amount,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		payload, err := json.Marshal(model.OrderCreatedPayload{OrderID: o.ID, Amount: o.Amount})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "encode error")
		}
		if err := r.Outbox().Create(ctx, model.OutboxEvent{
			EventID:   u.ids.NewID(),
			EventType: model.EventOrderCreated,
			Payload:   string(payload),
			CreatedAt: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = o
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CreatedOrderOutput{}, err
		}
		return CreatedOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("order accepted", zap.Int64("order_id", created.ID), zap.Int64("amount", created.Amount))
	return CreatedOrderOutput{
		OrderID: created.ID,
		Amount:  created.Amount,
		Status:  created.Status,
		Date:    created.CreatedAt.UTC().Format(isoLayout),
	}, nil
}

// List はクライアントの注文の形で新しい順に返す。
func (u *OrderServiceUsecase) List(ctx context.Context) ([]model.Order, error) {
	rows, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]model.Order, 0, len(rows))
	for _, o := range rows {
		out = append(out, model.Order{
			ID:     o.ID,
			Amount: o.Amount,
			Status: o.Status,
			Date:   o.CreatedAt.UTC().Format(isoLayout),
			Items:  []model.OrderItem{model.SummaryItem(o.ID, o.Amount)},
		})
	}
	return out, nil
}

// Clear は注文とOutboxを全件削除し、削除した注文数を返す。
func (u *OrderServiceUsecase) Clear(ctx context.Context) (int64, error) {
	var deleted int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Outbox().DeleteAll(ctx); err != nil {
			return err
		}
		n, err := r.Orders().DeleteAll(ctx)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		u.log.Error("order clear failed", zap.Error(err))
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("orders cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}

// ApplyPayment は決済結果を注文ステータスに反映する（success以外はキャンセル）。
func (u *OrderServiceUsecase) ApplyPayment(ctx context.Context, p model.PaymentProcessedPayload) error {
	if p.OrderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	status := model.OrderStatusCancelled
	if p.Status == model.PaymentStatusSuccess {
		status = model.OrderStatusCompleted
	}

	err := u.orders.UpdateStatus(ctx, p.OrderID, status)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("payment applied", zap.Int64("order_id", p.OrderID), zap.String("status", string(status)))
	return nil
}
