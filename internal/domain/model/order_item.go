package model

import "fmt"

// 注文明細（注文時点のスナップショット）
type OrderItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// 明細が無い注文に付ける1行だけの明細
func SummaryItem(orderID int64, amount int64) OrderItem {
	return OrderItem{
		Name:     fmt.Sprintf("Order #%d", orderID),
		Price:    amount,
		Quantity: 1,
	}
}
