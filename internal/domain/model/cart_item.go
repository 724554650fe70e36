package model

// カートの明細（1チケットにつき1行）
// quantity は常に1以上。0以下になった行は保存しない。
type CartLineItem struct {
	TicketID  int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Category  string `json:"category"`
}

// 小計
func (i CartLineItem) Subtotal() int64 {
	return i.UnitPrice * i.Quantity
}
