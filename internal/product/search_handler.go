package product

import (
	"strings"
	"time"

	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SearchResult struct {
	ID        uint     `json:"id"`
	ItemName  string   `json:"itemName"`
	ItemCodes []string `json:"itemCodes"`
	Category  string   `json:"category"`
}

// GET /api/product/search?query=
// Ürün adında veya herhangi bir birim kodunda büyük/küçük harf duyarsız
// alt dize araması. 2 karakterden kısa sorgu hatasız boş liste döner,
// sonuç 10 ile sınırlıdır.
func SearchProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("query"))
		if len(query) < 2 {
			return c.JSON([]SearchResult{})
		}

		// item_codes JSON text olarak saklandığından LIKE alt dize
		// aramasını kodlar üzerinde de çalıştırır
		pattern := "%" + strings.ToLower(query) + "%"

		var products []models.Product
		if err := database.DB.
			Where("LOWER(item_name) LIKE ? OR LOWER(item_codes) LIKE ?", pattern, pattern).
			Limit(10).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Arama başarısız")
		}

		results := make([]SearchResult, 0, len(products))
		for i := range products {
			p := &products[i]
			codes := p.ItemCodes
			if codes == nil {
				codes = []string{}
			}
			results = append(results, SearchResult{
				ID:        p.ID,
				ItemName:  p.ItemName,
				ItemCodes: codes,
				Category:  p.Category,
			})
		}

		return c.JSON(results)
	}
}

type ExpiringProductResponse struct {
	ProductResponse
	DaysLeft        int `json:"daysLeft"`
	DiscountPercent int `json:"discountPercent"`
}

// discountFor: kalan güne göre indirim katmanı (sunum kuralı,
// saklanan bir alan değil).
func discountFor(daysLeft int) int {
	switch {
	case daysLeft <= 30:
		return 30
	case daysLeft <= 60:
		return 20
	case daysLeft <= 90:
		return 10
	}
	return 0
}

// GET /api/product/expiring?days=90
// Son kullanma tarihi [bugün, bugün+days] aralığında olan ürünler.
func ExpiringProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 90)
		if days < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "days 1'den küçük olamaz")
		}

		now := time.Now()
		until := now.AddDate(0, 0, days)

		var products []models.Product
		if err := database.DB.
			Where("expiry_date >= ? AND expiry_date <= ?", now, until).
			Order("expiry_date ASC").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ExpiringProductResponse, 0, len(products))
		for i := range products {
			p := &products[i]
			daysLeft := int(p.ExpiryDate.Sub(now).Hours()/24) + 1
			resp = append(resp, ExpiringProductResponse{
				ProductResponse: newProductResponse(p),
				DaysLeft:        daysLeft,
				DiscountPercent: discountFor(daysLeft),
			})
		}

		return c.JSON(fiber.Map{"products": resp})
	}
}

// GET /api/product/expired
// Son kullanma tarihi geçmiş ürünler.
func ExpiredProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.
			Where("expiry_date < ?", time.Now()).
			Order("expiry_date ASC").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, newProductResponse(&products[i]))
		}

		return c.JSON(fiber.Map{"products": resp})
	}
}
