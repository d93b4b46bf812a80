package models

import "time"

type Product struct {
	ID           uint     `gorm:"primaryKey"`
	Category     string   `gorm:"size:100;index"`
	SupplierName string   `gorm:"size:100;index"`
	ItemName     string   `gorm:"size:100;index;not null"`
	Price        float64  `gorm:"not null"`
	ItemImage    string   `gorm:"size:500"`
	Quantity     int      `gorm:"not null"`
	PurchaseDate time.Time
	ExpiryDate   time.Time `gorm:"index"`
	ItemCodes    []string  `gorm:"serializer:json;type:text"` // birim başına bir kod
	Description  string    `gorm:"size:1000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
