package models

import "time"

// InventoryItem: Onaylanmış, operasyonel takipteki stok.
type InventoryItem struct {
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
	Marked       bool     `gorm:"not null;default:false"` // yaklaşan sipariş işareti
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryFromSupply: alan alan açık eşleme; tedarik kaydının kimliği ve
// zaman damgaları taşınmaz, miktar onaylanan miktardır.
func InventoryFromSupply(s *Supply, quantity int) InventoryItem {
	codes := make([]string, len(s.ItemCodes))
	copy(codes, s.ItemCodes)

	return InventoryItem{
		Category:     s.Category,
		SupplierName: s.SupplierName,
		ItemName:     s.ItemName,
		Price:        s.Price,
		ItemImage:    s.ItemImage,
		Quantity:     quantity,
		PurchaseDate: s.PurchaseDate,
		ExpiryDate:   s.ExpiryDate,
		ItemCodes:    codes,
		Marked:       false,
	}
}
