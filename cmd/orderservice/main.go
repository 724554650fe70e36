package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketstore/internal/config"
	"ticketstore/internal/infra/db"
	"ticketstore/internal/infra/messaging"
	infraRepo "ticketstore/internal/infra/repository"
	"ticketstore/internal/infra/token"
	"ticketstore/internal/logger"
	"ticketstore/internal/server"
	"ticketstore/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

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
	cfg, err := config.LoadOrderService()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.GoEnv, "order-service")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewServiceOrderGormRepository(gormDB)
	ticketRepo := infraRepo.NewTicketGormRepository(gormDB)
	outboxRepo := infraRepo.NewOutboxGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	orderUC := usecase.NewOrderServiceUsecase(txm, orderRepo, &uuidGenerator{}, &realClock{}, log)
	ticketUC := usecase.NewTicketUsecase(ticketRepo)

	seeded, err := ticketUC.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("ticket catalog seeded")
	}

	//キュー連携（URLが無ければOutboxに貯めるだけ）
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		pub, err := messaging.NewPublisher(conn, messaging.OrderQueue)
		if err != nil {
			return err
		}
		defer pub.Close()

		relay := usecase.NewOutboxRelay(outboxRepo, pub, 0, log)
		go relay.Run(ctx, cfg.OutboxInterval)

		payments := usecase.NewPaymentEventHandler(orderUC, log)
		if err := messaging.StartConsumer(ctx, conn, messaging.PaymentQueue, "order-service", payments, log); err != nil {
			return err
		}
		log.Info("rabbitmq connected", zap.Duration("outbox_interval", cfg.OutboxInterval))
	} else {
		log.Warn("RABBITMQ_URL not set, outbox events stay unpublished")
	}

	//Server起動
	e := server.New(log)
	server.RegisterOrderService(e, server.OrderServiceRoutes{
		Orders:  orderUC,
		Tickets: ticketUC,
		Admin:   token.NewAdminTokens(cfg.AdminSecret, 0),
	})

	return server.Start(ctx, e, config.Addr(cfg.Port), log)
}
