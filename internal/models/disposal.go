package models

import "time"

// Disposal: Dolaşımdan çıkarılan birim(ler)in kaydı. Kaynak ürünün kod
// listesi aynı işlem içinde küçültülür.
type Disposal struct {
	ID        uint     `gorm:"primaryKey"`
	ItemName  string   `gorm:"size:100;not null"`
	Category  string   `gorm:"size:100;not null"`
	ItemCodes []string `gorm:"serializer:json;type:text"`
	Location  string   `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
