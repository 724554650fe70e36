package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// CartUsecase は端末ローカルのカート。
// 変更のたびに保存してから件数リスナーへ通知する。
type CartUsecase struct {
	store    repo.KeyValueStore
	listener CartCountListener
	mu       *sync.Mutex
	log      *zap.Logger
}

// muは同じプロファイルの読み書きを直列にするためのもの
func NewCartUsecase(store repo.KeyValueStore, listener CartCountListener, mu *sync.Mutex, log *zap.Logger) *CartUsecase {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &CartUsecase{store: store, listener: listener, mu: mu, log: logger.OrNop(log)}
}

// GetCart は保存済みのカート。無い・壊れている場合は空。
func (u *CartUsecase) GetCart(ctx context.Context) []model.CartLineItem {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.load(ctx)
}

// AddToCart は同じチケットなら数量を加算、無ければ末尾に追加。
func (u *CartUsecase) AddToCart(ctx context.Context, ticket model.Ticket, quantity int64) ([]model.CartLineItem, error) {
	if ticket.ID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid ticket")
	}
	if quantity < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	cart := u.load(ctx)

	found := false
	for i := range cart {
		if cart[i].TicketID == ticket.ID {
			cart[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, model.CartLineItem{
			TicketID:  ticket.ID,
			Name:      ticket.Name,
			UnitPrice: ticket.Price,
			Quantity:  quantity,
			Category:  ticket.Category,
		})
	}

	if err := u.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity は数量を上書き。0以下なら行を削除。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, ticketID int64, quantity int64) ([]model.CartLineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	cart := u.load(ctx)

	// 無いIDでも保存と通知はする
	if idx := indexOfTicket(cart, ticketID); idx >= 0 {
		if quantity <= 0 {
			cart = append(cart[:idx], cart[idx+1:]...)
		} else {
			cart[idx].Quantity = quantity
		}
	}

	if err := u.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// 明細削除
func (u *CartUsecase) RemoveFromCart(ctx context.Context, ticketID int64) ([]model.CartLineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	cart := u.load(ctx)
	filtered := make([]model.CartLineItem, 0, len(cart))
	for _, it := range cart {
		if it.TicketID != ticketID {
			filtered = append(filtered, it)
		}
	}

	if err := u.save(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// ClearCart は保存済みのカートごと消す。
func (u *CartUsecase) ClearCart(ctx context.Context) ([]model.CartLineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.Remove(ctx, repo.KeyCart); err != nil {
		u.log.Error("cart clear failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	empty := []model.CartLineItem{}
	u.notify(ctx, empty)
	return empty, nil
}

// RemoveOrdered は注文に含めた分だけカートから引く。
// 送信中に追加・増量された分は残る。全部なくなればClearCartと同じ。
func (u *CartUsecase) RemoveOrdered(ctx context.Context, ordered []model.CartLineItem) ([]model.CartLineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	submitted := make(map[int64]int64, len(ordered))
	for _, it := range ordered {
		submitted[it.TicketID] += it.Quantity
	}

	rest := make([]model.CartLineItem, 0)
	for _, it := range u.load(ctx) {
		it.Quantity -= submitted[it.TicketID]
		if it.Quantity >= 1 {
			rest = append(rest, it)
		}
	}

	if len(rest) > 0 {
		if err := u.save(ctx, rest); err != nil {
			return nil, err
		}
		return rest, nil
	}

	if err := u.store.Remove(ctx, repo.KeyCart); err != nil {
		u.log.Error("cart clear failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	u.notify(ctx, rest)
	return rest, nil
}

func (u *CartUsecase) GetCartTotal(ctx context.Context) int64 {
	return CartTotal(u.GetCart(ctx))
}

func (u *CartUsecase) GetCartCount(ctx context.Context) int64 {
	return CartCount(u.GetCart(ctx))
}

// 画面を開いた時などに現在の件数をリスナーへ流し直す
func (u *CartUsecase) SyncCount(ctx context.Context) int64 {
	u.mu.Lock()
	defer u.mu.Unlock()

	cart := u.load(ctx)
	u.notify(ctx, cart)
	return CartCount(cart)
}

// price×quantity の合計
func CartTotal(items []model.CartLineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// quantity の合計
func CartCount(items []model.CartLineItem) int64 {
	var count int64
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

func indexOfTicket(items []model.CartLineItem, ticketID int64) int {
	for i, it := range items {
		if it.TicketID == ticketID {
			return i
		}
	}
	return -1
}

// mu保持中に呼ぶ
func (u *CartUsecase) load(ctx context.Context) []model.CartLineItem {
	raw, err := u.store.Get(ctx, repo.KeyCart)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartLineItem{}
	}
	if err != nil {
		u.log.Warn("cart read failed, treating as empty", zap.Error(err))
		return []model.CartLineItem{}
	}

	var cart []model.CartLineItem
	if err := json.Unmarshal(raw, &cart); err != nil {
		u.log.Warn("cart data malformed, treating as empty", zap.Error(err))
		return []model.CartLineItem{}
	}

	// 数量0以下の行は保存しない約束なので読み込み時にも落とす
	valid := make([]model.CartLineItem, 0, len(cart))
	for _, it := range cart {
		if it.Quantity >= 1 {
			valid = append(valid, it)
		}
	}
	return valid
}

// mu保持中に呼ぶ
func (u *CartUsecase) save(ctx context.Context, cart []model.CartLineItem) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "encode error")
	}
	if err := u.store.Set(ctx, repo.KeyCart, raw); err != nil {
		u.log.Error("cart save failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.notify(ctx, cart)
	return nil
}

func (u *CartUsecase) notify(ctx context.Context, cart []model.CartLineItem) {
	if u.listener == nil {
		return
	}
	u.listener.CartCountChanged(ctx, CartCount(cart))
}
