package repository

import (
	"context"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"

	"gorm.io/gorm"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

var _ repo.OutboxRepository = (*OutboxGormRepository)(nil)

func (r *OutboxGormRepository) Create(ctx context.Context, ev model.OutboxEvent) error {
	return r.db.WithContext(ctx).Create(&ev).Error
}

func (r *OutboxGormRepository) ListUnprocessed(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	var events []model.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return []model.OutboxEvent{}, err
	}
	return events, nil
}

func (r *OutboxGormRepository) MarkProcessed(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("id = ?", id).
		Update("processed", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OutboxGormRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.OutboxEvent{}).Error
}
