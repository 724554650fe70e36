package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"

	"go.uber.org/zap"
)

// PaymentEventHandler はpayment_queueのメッセージを注文ステータスへ反映する。
type PaymentEventHandler struct {
	orders *OrderServiceUsecase
	log    *zap.Logger
}

func NewPaymentEventHandler(orders *OrderServiceUsecase, log *zap.Logger) *PaymentEventHandler {
	return &PaymentEventHandler{orders: orders, log: logger.OrNop(log)}
}

// Handle はメッセージ本文を処理する。
// 知らないイベントは無視（nil）、壊れたメッセージはエラー。
func (h *PaymentEventHandler) Handle(ctx context.Context, body []byte) error {
	var msg model.QueueMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if msg.EventType != model.EventPaymentProcessed {
		h.log.Warn("unsupported event ignored", zap.String("event_type", msg.EventType))
		return nil
	}

	var p model.PaymentProcessedPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return fmt.Errorf("decode payment payload: %w", err)
	}

	if err := h.orders.ApplyPayment(ctx, p); err != nil {
		return fmt.Errorf("apply payment for order %d: %w", p.OrderID, err)
	}
	return nil
}
