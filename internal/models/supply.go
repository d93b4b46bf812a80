package models

import "time"

// Supply: Tedarikçinin onay bekleyen stok bildirimi. Admin onayıyla
// kısmen ya da tamamen envantere aktarılır.
type Supply struct {
	ID           uint    `gorm:"primaryKey"`
	Category     string  `gorm:"size:100;index"`
	SupplierName string  `gorm:"size:100;index"`
	ItemName     string  `gorm:"size:100;index;not null"`
	Price        float64 `gorm:"not null"`
	ItemImage    string  `gorm:"size:500"`
	Quantity     int     `gorm:"not null"`
	PurchaseDate time.Time
	ExpiryDate   time.Time
	ItemCodes    []string `gorm:"serializer:json;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
