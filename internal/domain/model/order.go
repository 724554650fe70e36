package model

import (
	"encoding/json"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 既知のステータスか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPending, OrderStatusCancelled:
		return true
	}
	return false
}

// 受付後は変更しない注文レコード。
// サーバー採番のIDは正の値、ローカルで作った代替注文は負の値。
type Order struct {
	ID     int64       `json:"id"`
	Amount int64       `json:"amount"`
	Status OrderStatus `json:"status"`
	Date   string      `json:"date,omitempty"`
	Items  []OrderItem `json:"items"`
}

// itemsは常に配列で出す（nullにしない）
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return json.Marshal(plain(o))
}

// サーバーが知らない（ローカルで作った）注文か
func (o Order) IsLocal() bool {
	return o.ID < 0
}

var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Dateを解釈する。空や解釈できない値はUnixエポック扱い（一番古い）。
func (o Order) Time() time.Time {
	s := strings.TrimSpace(o.Date)
	if s == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
