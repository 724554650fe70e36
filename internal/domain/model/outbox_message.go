package model

import "encoding/json"

// キューに流すメッセージ {event_type, payload}
type QueueMessage struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

// order_created のpayload
type OrderCreatedPayload struct {
	OrderID int64 `json:"order_id"`
	Amount  int64 `json:"amount"`
}

// payment_processed のpayload
type PaymentProcessedPayload struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// 決済結果
const PaymentStatusSuccess = "success"
