package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// OrderCache は送信済み・代替の注文を端末側に追記していく。
// 削除はClearだけ（上限なし）。
type OrderCache struct {
	store repo.KeyValueStore
	mu    *sync.Mutex
	log   *zap.Logger
}

func NewOrderCache(store repo.KeyValueStore, mu *sync.Mutex, log *zap.Logger) *OrderCache {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &OrderCache{store: store, mu: mu, log: logger.OrNop(log)}
}

// 保存順のまま返す。無い・壊れている場合は空。
// 読めない1件は飛ばす（保存データからは消さない）。
func (c *OrderCache) List(ctx context.Context) []model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.loadRecords(ctx)
	if err != nil {
		c.log.Warn("order cache unreadable, treating as empty", zap.Error(err))
		return []model.Order{}
	}

	orders := make([]model.Order, 0, len(records))
	for i, r := range records {
		var o model.Order
		if err := json.Unmarshal(r, &o); err != nil {
			c.log.Warn("order cache record skipped", zap.Int("index", i), zap.Error(err))
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

// Append は末尾に1件足す。既存データが読めないときは上書きせずエラー。
func (c *OrderCache) Append(ctx context.Context, o model.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.loadRecords(ctx)
	if err != nil {
		return err
	}

	rec, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	raw, err := json.Marshal(append(records, rec))
	if err != nil {
		return fmt.Errorf("encode order cache: %w", err)
	}
	if err := c.store.Set(ctx, repo.KeyOrderCache, raw); err != nil {
		return fmt.Errorf("save order cache: %w", err)
	}
	return nil
}

func (c *OrderCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(ctx, repo.KeyOrderCache); err != nil {
		return fmt.Errorf("clear order cache: %w", err)
	}
	return nil
}

// 1件ずつの生JSONで読む。未保存なら空。
func (c *OrderCache) loadRecords(ctx context.Context) ([]json.RawMessage, error) {
	raw, err := c.store.Get(ctx, repo.KeyOrderCache)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read order cache: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode order cache: %w", err)
	}
	return records, nil
}
