package models

import "time"

type CartItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Checkout: Tamamlanmış satın alma. Oluşturulduktan sonra değişmez.
// Kart alanları opak string olarak saklanır, gerçek ödeme işlenmez.
type Checkout struct {
	ID         uint       `gorm:"primaryKey"`
	Name       string     `gorm:"size:100;not null"`
	Address    string     `gorm:"size:255;not null"`
	City       string     `gorm:"size:100;not null"`
	CardNumber string     `gorm:"size:30;not null"`
	CardExpiry string     `gorm:"size:10;not null"`
	CVV        string     `gorm:"size:6;not null"`
	CartItems  []CartItem `gorm:"serializer:json;type:text"`
	TotalPrice float64    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
