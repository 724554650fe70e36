package model

import "time"

const (
	EventOrderCreated     = "order_created"
	EventPaymentProcessed = "payment_processed"
)

// キューへ送る前に保存しておくイベント（Outbox）
type OutboxEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"event_id"`
	EventType string    `gorm:"type:varchar(50);not null" json:"event_type"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	Processed bool      `gorm:"not null;default:false;index" json:"processed"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox"
}
