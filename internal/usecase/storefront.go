package usecase

import (
	"hash/fnv"
	"sync"

	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

const profileLockStripes = 64

type StorefrontDeps struct {
	// プロファイル専用の保存先を返す
	Scope       func(profileID string) repo.KeyValueStore
	Gateway     repo.OrderGateway
	Badges      *BadgeBoard
	Clock       Clock
	LocalIDs    LocalOrderIDGenerator
	AdminTokens AdminTokenSource
	FeePercent  int64
	Log         *zap.Logger
}

// Storefront はプロファイル（ブラウザ相当）ごとのSessionを組み立てる。
type Storefront struct {
	deps  StorefrontDeps
	locks [profileLockStripes]sync.Mutex
}

func NewStorefront(deps StorefrontDeps) *Storefront {
	deps.Log = logger.OrNop(deps.Log)
	if deps.Badges == nil {
		deps.Badges = NewBadgeBoard()
	}
	return &Storefront{deps: deps}
}

// 1プロファイル分のusecase一式
type Session struct {
	ProfileID   string
	Cart        *CartUsecase
	Orders      *OrderCache
	Checkout    *CheckoutUsecase
	History     *OrderHistoryUsecase
	Preferences *PreferenceUsecase
}

func (s *Storefront) Session(profileID string) *Session {
	d := s.deps
	store := d.Scope(profileID)
	mu := s.lockFor(profileID)
	log := d.Log.With(zap.String("profile_id", profileID))

	cart := NewCartUsecase(store, d.Badges.Listener(profileID), mu, log)
	cache := NewOrderCache(store, mu, log)

	return &Session{
		ProfileID:   profileID,
		Cart:        cart,
		Orders:      cache,
		Checkout:    NewCheckoutUsecase(d.Gateway, cache, cart, d.Clock, d.LocalIDs, d.FeePercent, log),
		History:     NewOrderHistoryUsecase(d.Gateway, cache, cart, d.AdminTokens, d.Clock, log),
		Preferences: NewPreferenceUsecase(store, log),
	}
}

func (s *Storefront) Badges() *BadgeBoard {
	return s.deps.Badges
}

// 同じプロファイルは同じロック
func (s *Storefront) lockFor(profileID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(profileID))
	return &s.locks[h.Sum32()%profileLockStripes]
}
