package messaging

import (
	"context"
	"fmt"

	"ticketstore/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// メッセージ1件の処理
type MessageHandler interface {
	Handle(ctx context.Context, body []byte) error
}

// StartConsumer はqueueの購読を始める。ctxが終わると止まる。
// 処理に失敗したメッセージは捨てる（再配送しない）。
func StartConsumer(ctx context.Context, conn *amqp.Connection, queue string, tag string, h MessageHandler, log *zap.Logger) error {
	log = logger.OrNop(log)

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		return err
	}

	msgs, err := ch.Consume(
		queue,
		tag,   // consumer tag
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		defer ch.Close()

		for {
			select {
			case <-ctx.Done():
				log.Info("stopping consumer", zap.String("queue", queue))
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn("messages channel closed", zap.String("queue", queue))
					return
				}
				deliver(ctx, h, msg, log)
			}
		}
	}()

	return nil
}

// 処理結果に応じてAck/Nackする
func deliver(ctx context.Context, h MessageHandler, msg amqp.Delivery, log *zap.Logger) {
	if err := h.Handle(ctx, msg.Body); err != nil {
		log.Warn("message handling failed, dropping", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}
	_ = msg.Ack(false)
}
