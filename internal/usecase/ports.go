package usecase

import (
	"context"
	"time"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// サーバーに届かなかった注文のID（サーバーIDと衝突しない空間）
type LocalOrderIDGenerator interface {
	NewLocalOrderID() int64
}

// カート件数の表示（バッジ）を更新する先
type CartCountListener interface {
	CartCountChanged(ctx context.Context, count int64)
}

// 注文一括削除用の管理トークン
type AdminTokenSource interface {
	AdminToken(now time.Time) (string, error)
}

// toISOString と同じ形
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func isoNow(c Clock) string {
	return c.Now().UTC().Format(isoLayout)
}

// イベントIDなどの採番
type IDGenerator interface {
	NewID() string
}
