package repository

import (
	"context"
	"errors"

	"ticketstore/internal/domain/model"
)

// ゲートウェイ実装はこれらをラップして返す。どちらでもなければ通信エラー。
var (
	ErrGatewayStatus    = errors.New("order service returned error status")
	ErrGatewayMalformed = errors.New("malformed order service response")
)

// リモートの注文サービス
type OrderGateway interface {
	CreateOrder(ctx context.Context, amount int64) (model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	// 管理用の一括削除（secretはトークン）
	ClearOrders(ctx context.Context, secret string) error
	ListTickets(ctx context.Context) ([]model.Ticket, error)
}
