package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketstore/internal/config"
	"ticketstore/internal/infra/db"
	"ticketstore/internal/infra/ids"
	"ticketstore/internal/infra/orderapi"
	"ticketstore/internal/infra/storage"
	"ticketstore/internal/infra/token"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"
	"ticketstore/internal/server"
	"ticketstore/internal/usecase"

	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.GoEnv, "storefront")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//保存先
	base, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	//注文サービスのクライアント（タイムアウト0なら無し）
	gateway, err := orderapi.NewClient(cfg.OrderServiceURL, &http.Client{Timeout: cfg.OrderServiceTimeout})
	if err != nil {
		return err
	}

	//Usecase生成
	sf := usecase.NewStorefront(usecase.StorefrontDeps{
		Scope: func(profileID string) repo.KeyValueStore {
			return storage.Namespaced(base, profileID)
		},
		Gateway:     gateway,
		Badges:      usecase.NewBadgeBoard(),
		Clock:       &realClock{},
		LocalIDs:    ids.NewLocalOrderIDs(),
		AdminTokens: adminTokens(cfg.AdminSecret),
		FeePercent:  cfg.ServiceFeePercent,
		Log:         log,
	})
	catalog := usecase.NewCatalogUsecase(gateway, log)

	//Server起動
	e := server.New(log)
	server.RegisterStorefront(e, server.StorefrontRoutes{
		Storefront: sf,
		Catalog:    catalog,
		Profiles:   ids.Profiles{},
	})

	return server.Start(ctx, e, config.Addr(cfg.Port), log)
}

// 鍵が無ければサーバー側の一括削除はしない
func adminTokens(secret string) usecase.AdminTokenSource {
	if secret == "" {
		return nil
	}
	return token.NewAdminTokens(secret, 0)
}

func openStore(ctx context.Context, cfg config.StorefrontConfig, log *zap.Logger) (repo.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageFile:
		s, err := storage.NewFileStore(cfg.StoragePath, log)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.StorageRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client, "storefront", 0), func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		pool, err := db.ConnectPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		s := storage.NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	default:
		return storage.NewMemoryStore(), noop, nil
	}
}
