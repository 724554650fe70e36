package usecase

import (
	"context"
	"net/http"
	"sort"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// 注文履歴の出どころ
type HistorySource string

const (
	HistorySourceMerged HistorySource = "merged"
	HistorySourceLocal  HistorySource = "local"
	HistorySourceSample HistorySource = "sample"
)

// HistoryResult は日付の新しい順の注文一覧。
// サーバーに届かなかった場合はReasonに理由が入る。
type HistoryResult struct {
	Orders []model.Order
	Source HistorySource
	Reason error
}

func (r HistoryResult) Degraded() bool {
	return r.Source != HistorySourceMerged
}

type OrderHistoryUsecase struct {
	gateway repo.OrderGateway
	cache   *OrderCache
	cart    *CartUsecase
	tokens  AdminTokenSource
	clock   Clock
	log     *zap.Logger
}

func NewOrderHistoryUsecase(
	gateway repo.OrderGateway,
	cache *OrderCache,
	cart *CartUsecase,
	tokens AdminTokenSource,
	clock Clock,
	log *zap.Logger,
) *OrderHistoryUsecase {
	return &OrderHistoryUsecase{
		gateway: gateway,
		cache:   cache,
		cart:    cart,
		tokens:  tokens,
		clock:   clock,
		log:     logger.OrNop(log),
	}
}

// GetOrders はサーバーの一覧とローカルキャッシュをまとめる。
// サーバーに届かなければローカル、それも空なら見本データ。
func (u *OrderHistoryUsecase) GetOrders(ctx context.Context) HistoryResult {
	local := u.cache.List(ctx)

	remote, err := u.gateway.ListOrders(ctx)
	if err != nil {
		reason := classifyGatewayError(err)

		if len(local) > 0 {
			u.log.Warn("order history unavailable, using local orders", zap.Int("count", len(local)), zap.Error(err))
			SortByDateDesc(local)
			return HistoryResult{Orders: local, Source: HistorySourceLocal, Reason: reason}
		}

		u.log.Warn("order history unavailable, using sample orders", zap.Error(err))
		sample := SampleOrders()
		SortByDateDesc(sample)
		return HistoryResult{Orders: sample, Source: HistorySourceSample, Reason: reason}
	}

	merged := MergeOrders(remote, local)
	SortByDateDesc(merged)
	return HistoryResult{Orders: merged, Source: HistorySourceMerged}
}

// FindOrder は一覧からIDで探す（レシート詳細）。
func (u *OrderHistoryUsecase) FindOrder(ctx context.Context, orderID int64) (model.Order, error) {
	res := u.GetOrders(ctx)
	for _, o := range res.Orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
}

// ClearAll はサーバーの注文（失敗は無視）とローカルの注文・カートを消す。
func (u *OrderHistoryUsecase) ClearAll(ctx context.Context) error {
	u.clearRemote(ctx)

	if err := u.cache.Clear(ctx); err != nil {
		u.log.Error("order cache clear failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if _, err := u.cart.ClearCart(ctx); err != nil {
		return err
	}
	return nil
}

func (u *OrderHistoryUsecase) clearRemote(ctx context.Context) {
	if u.tokens == nil {
		return
	}
	token, err := u.tokens.AdminToken(u.clock.Now())
	if err != nil {
		u.log.Warn("admin token unavailable, skipping server clear", zap.Error(err))
		return
	}
	if err := u.gateway.ClearOrders(ctx, token); err != nil {
		u.log.Warn("server order clear failed", zap.Error(err))
		return
	}
	u.log.Info("server orders cleared")
}

// MergeOrders はIDで重複を除いてまとめる。
// サーバー側が優先、ローカルにしか無いIDはキャッシュ順で後ろに付ける。
// どちらの一覧でも同じIDが複数あれば最初のものを残す。
func MergeOrders(server []model.Order, local []model.Order) []model.Order {
	out := make([]model.Order, 0, len(server)+len(local))
	seen := make(map[int64]struct{}, len(server)+len(local))

	for _, list := range [][]model.Order{server, local} {
		for _, o := range list {
			if _, ok := seen[o.ID]; ok {
				continue
			}
			seen[o.ID] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// 日付の新しい順（安定ソート）。日付なし・不正はエポック扱い。
func SortByDateDesc(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Time().After(orders[j].Time())
	})
}

// 完全オフラインでも画面が空にならないための見本
func SampleOrders() []model.Order {
	return []model.Order{
		{
			ID:     1001,
			Amount: 5999,
			Status: model.OrderStatusCompleted,
			Date:   "2024-01-15T14:30:00",
			Items: []model.OrderItem{
				{Name: `Concert ticket: "Kino"`, Price: 2999, Quantity: 2},
			},
		},
		{
			ID:     1002,
			Amount: 2499,
			Status: model.OrderStatusPending,
			Date:   "2024-01-16T10:15:00",
			Items: []model.OrderItem{
				{Name: `Cinema ticket: "Dune: Part Two"`, Price: 2499, Quantity: 1},
			},
		},
	}
}
