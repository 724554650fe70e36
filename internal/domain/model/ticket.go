package model

// イベントチケット（カタログの1件）
type Ticket struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Price       int64  `gorm:"not null" json:"price"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(50);index" json:"category"`
	Date        string `gorm:"type:varchar(50)" json:"date"`
	Venue       string `gorm:"type:varchar(100)" json:"venue"`
	Available   int64  `gorm:"not null;default:0" json:"available"`
}
