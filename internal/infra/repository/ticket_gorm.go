package repository

import (
	"context"
	"errors"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"

	"gorm.io/gorm"
)

type TicketGormRepository struct {
	db *gorm.DB
}

func NewTicketGormRepository(db *gorm.DB) *TicketGormRepository {
	return &TicketGormRepository{db: db}
}

var _ repo.TicketRepository = (*TicketGormRepository)(nil)

func (r *TicketGormRepository) List(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := r.db.WithContext(ctx).Order("id asc").Find(&tickets).Error; err != nil {
		return []model.Ticket{}, err
	}
	return tickets, nil
}

func (r *TicketGormRepository) FindByID(ctx context.Context, ticketID int64) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", ticketID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ticket{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

func (r *TicketGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Ticket{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *TicketGormRepository) CreateBulk(ctx context.Context, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tickets).Error
}
