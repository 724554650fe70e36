package usecase

import (
	"context"
	"sync"
)

// 画面のカート件数表示とチェックアウトボタンの状態
type Badge struct {
	Count           int64 `json:"count"`
	CheckoutEnabled bool  `json:"checkout_enabled"`
}

// BadgeBoard はプロファイルごとの最新の件数を持つ。
type BadgeBoard struct {
	mu     sync.RWMutex
	counts map[string]int64
}

func NewBadgeBoard() *BadgeBoard {
	return &BadgeBoard{counts: map[string]int64{}}
}

func (b *BadgeBoard) Listener(profileID string) CartCountListener {
	return badgeListener{board: b, profileID: profileID}
}

func (b *BadgeBoard) Snapshot(profileID string) Badge {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := b.counts[profileID]
	return Badge{Count: count, CheckoutEnabled: count > 0}
}

func (b *BadgeBoard) set(profileID string, count int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if count == 0 {
		delete(b.counts, profileID)
		return
	}
	b.counts[profileID] = count
}

type badgeListener struct {
	board     *BadgeBoard
	profileID string
}

func (l badgeListener) CartCountChanged(ctx context.Context, count int64) {
	l.board.set(l.profileID, count)
}
