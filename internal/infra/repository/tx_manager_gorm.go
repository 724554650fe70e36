package repository

import (
	"context"

	repo "ticketstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders repo.ServiceOrderRepository
	outbox repo.OutboxRepository
}

func (r *txReposGorm) Orders() repo.ServiceOrderRepository { return r.orders }
func (r *txReposGorm) Outbox() repo.OutboxRepository       { return r.outbox }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders: NewServiceOrderGormRepository(tx),
			outbox: NewOutboxGormRepository(tx),
		}
		return fn(r)
	})
}
