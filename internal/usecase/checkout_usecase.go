package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// 代替注文になった理由
var (
	ErrOrderServiceUnreachable = errors.New("order service unreachable")
	ErrOrderServiceRejected    = errors.New("order service rejected the request")
	ErrOrderServiceMalformed   = errors.New("order service sent a malformed response")
)

// 手数料の明細名
const serviceFeeItemName = "Service fee"

// CheckoutResult はサーバー確定（Reason == nil）か代替注文（Reason != nil）か。
type CheckoutResult struct {
	Order  model.Order
	Reason error
}

func (r CheckoutResult) Degraded() bool {
	return r.Reason != nil
}

type CheckoutUsecase struct {
	gateway    repo.OrderGateway
	cache      *OrderCache
	cart       *CartUsecase
	clock      Clock
	ids        LocalOrderIDGenerator
	feePercent int64
	log        *zap.Logger
}

func NewCheckoutUsecase(
	gateway repo.OrderGateway,
	cache *OrderCache,
	cart *CartUsecase,
	clock Clock,
	ids LocalOrderIDGenerator,
	feePercent int64,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		gateway:    gateway,
		cache:      cache,
		cart:       cart,
		clock:      clock,
		ids:        ids,
		feePercent: feePercent,
		log:        logger.OrNop(log),
	}
}

// CreateOrder は必ず使える注文を返す（エラーにはしない）。
// 送信に失敗したらローカルで代替注文を作り、同じようにキャッシュへ追記する。
func (u *CheckoutUsecase) CreateOrder(ctx context.Context, amount int64) CheckoutResult {
	return u.submit(ctx, amount, nil)
}

// Checkout はカート合計＋手数料で注文し、注文した行をカートから消す。
func (u *CheckoutUsecase) Checkout(ctx context.Context) (CheckoutResult, error) {
	items := u.cart.GetCart(ctx)
	if len(items) == 0 {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	total := CartTotal(items)
	fee := ServiceFee(total, u.feePercent)

	orderItems := make([]model.OrderItem, 0, len(items)+1)
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			Name:     it.Name,
			Price:    it.UnitPrice,
			Quantity: it.Quantity,
		})
	}
	if fee > 0 {
		orderItems = append(orderItems, model.OrderItem{Name: serviceFeeItemName, Price: fee, Quantity: 1})
	}

	res := u.submit(ctx, total+fee, orderItems)

	// 注文はできているのでカート削除の失敗は記録だけ
	if _, err := u.cart.RemoveOrdered(ctx, items); err != nil {
		u.log.Error("cart clear after checkout failed", zap.Int64("order_id", res.Order.ID), zap.Error(err))
	}
	return res, nil
}

// 四捨五入（Math.roundと同じ）
func ServiceFee(total int64, percent int64) int64 {
	if total <= 0 || percent <= 0 {
		return 0
	}
	return (total*percent + 50) / 100
}

func (u *CheckoutUsecase) submit(ctx context.Context, amount int64, items []model.OrderItem) CheckoutResult {
	o, err := u.gateway.CreateOrder(ctx, amount)
	if err == nil {
		if o.Date == "" {
			o.Date = isoNow(u.clock)
		}
		o.Items = orderItemsOrSummary(items, o)
		u.remember(ctx, o)

		u.log.Info("order created", zap.Int64("order_id", o.ID), zap.Int64("amount", o.Amount))
		return CheckoutResult{Order: o}
	}

	reason := classifyGatewayError(err)
	fallback := model.Order{
		ID:     u.ids.NewLocalOrderID(),
		Amount: amount,
		Status: model.OrderStatusCompleted,
		Date:   isoNow(u.clock),
	}
	fallback.Items = orderItemsOrSummary(items, fallback)
	u.remember(ctx, fallback)

	u.log.Warn("order service unavailable, created local order",
		zap.Int64("order_id", fallback.ID),
		zap.Int64("amount", amount),
		zap.Error(err),
	)
	return CheckoutResult{Order: fallback, Reason: reason}
}

func (u *CheckoutUsecase) remember(ctx context.Context, o model.Order) {
	if err := u.cache.Append(ctx, o); err != nil {
		u.log.Error("order cache append failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

func orderItemsOrSummary(items []model.OrderItem, o model.Order) []model.OrderItem {
	if len(items) > 0 {
		return items
	}
	return []model.OrderItem{model.SummaryItem(o.ID, o.Amount)}
}

// ゲートウェイのエラーを3種類に分ける（元のエラーも残す）
func classifyGatewayError(err error) error {
	switch {
	case errors.Is(err, repo.ErrGatewayStatus):
		return fmt.Errorf("%w: %w", ErrOrderServiceRejected, err)
	case errors.Is(err, repo.ErrGatewayMalformed):
		return fmt.Errorf("%w: %w", ErrOrderServiceMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrOrderServiceUnreachable, err)
	}
}
