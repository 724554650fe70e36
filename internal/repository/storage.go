package repository

import "context"

// 端末ローカルの保存先に置くキー
const (
	KeyCart       = "ticketCart"
	KeyOrderCache = "user_orders"
	KeyTheme      = "theme"
)

// get/set/removeだけのキーバリュー保存先。
// 無いキーのGetはErrNotFoundを返す。
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
