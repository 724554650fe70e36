package repository

import (
	"context"
	"errors"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"

	"gorm.io/gorm"
)

type ServiceOrderGormRepository struct {
	db *gorm.DB
}

func NewServiceOrderGormRepository(db *gorm.DB) *ServiceOrderGormRepository {
	return &ServiceOrderGormRepository{db: db}
}

var _ repo.ServiceOrderRepository = (*ServiceOrderGormRepository)(nil)

func (r *ServiceOrderGormRepository) Create(ctx context.Context, order model.ServiceOrder) (model.ServiceOrder, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.ServiceOrder{}, err
	}
	return order, nil
}

func (r *ServiceOrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.ServiceOrder, error) {
	var o model.ServiceOrder
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ServiceOrder{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderGormRepository) ListAll(ctx context.Context) ([]model.ServiceOrder, error) {
	var items []model.ServiceOrder
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.ServiceOrder{}, err
	}
	return items, nil
}

func (r *ServiceOrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.ServiceOrder{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ServiceOrderGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	// 条件なしのDeleteはgormが拒否するのでWhere("1 = 1")
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ServiceOrder{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
