package model

import "time"

// 注文サービス側で保存する注文
type ServiceOrder struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount    int64       `gorm:"not null" json:"amount"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ServiceOrder) TableName() string {
	return "orders"
}
