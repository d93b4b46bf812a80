package product

import (
	"strings"
	"time"

	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductRequest struct {
	Category     string   `json:"category"`
	SupplierName string   `json:"supplierName"`
	ItemName     string   `json:"itemName"`
	Price        float64  `json:"price"`
	ItemImage    string   `json:"itemImage"`
	Quantity     int      `json:"quantity"`
	PurchaseDate string   `json:"purchaseDate"` // "2025-12-09"
	ExpiryDate   string   `json:"expiryDate"`
	ItemCodes    []string `json:"itemCodes"`
	Description  string   `json:"description"`
}

type ProductResponse struct {
	ID           uint     `json:"id"`
	Category     string   `json:"category"`
	SupplierName string   `json:"supplierName"`
	ItemName     string   `json:"itemName"`
	Price        float64  `json:"price"`
	ItemImage    string   `json:"itemImage"`
	Quantity     int      `json:"quantity"`
	PurchaseDate string   `json:"purchaseDate"`
	ExpiryDate   string   `json:"expiryDate"`
	ItemCodes    []string `json:"itemCodes"`
	Description  string   `json:"description"`
	CreatedAt    string   `json:"createdAt"`
}

func newProductResponse(p *models.Product) ProductResponse {
	codes := p.ItemCodes
	if codes == nil {
		codes = []string{}
	}
	return ProductResponse{
		ID:           p.ID,
		Category:     p.Category,
		SupplierName: p.SupplierName,
		ItemName:     p.ItemName,
		Price:        p.Price,
		ItemImage:    p.ItemImage,
		Quantity:     p.Quantity,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:   p.ExpiryDate.Format("2006-01-02"),
		ItemCodes:    codes,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" formatı 'YYYY-MM-DD' olmalı")
	}
	return d, nil
}

// POST /api/product/add
func AddProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)
		if body.ItemName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itemName zorunludur")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity negatif olamaz")
		}

		purchaseDate, err := parseDate(body.PurchaseDate, "purchaseDate")
		if err != nil {
			return err
		}
		expiryDate, err := parseDate(body.ExpiryDate, "expiryDate")
		if err != nil {
			return err
		}

		p := models.Product{
			Category:     body.Category,
			SupplierName: body.SupplierName,
			ItemName:     body.ItemName,
			Price:        body.Price,
			ItemImage:    body.ItemImage,
			Quantity:     body.Quantity,
			PurchaseDate: purchaseDate,
			ExpiryDate:   expiryDate,
			ItemCodes:    body.ItemCodes,
			Description:  body.Description,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(newProductResponse(&p))
	}
}

// GET /api/product/all
func GetProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("created_at DESC").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, newProductResponse(&products[i]))
		}

		return c.JSON(fiber.Map{"products": resp})
	}
}

// GET /api/product/:productId
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("productId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(newProductResponse(&p))
	}
}

type UpdateProductRequest struct {
	Category     *string   `json:"category"`
	SupplierName *string   `json:"supplierName"`
	ItemName     *string   `json:"itemName"`
	Price        *float64  `json:"price"`
	ItemImage    *string   `json:"itemImage"`
	Quantity     *int      `json:"quantity"`
	PurchaseDate *string   `json:"purchaseDate"`
	ExpiryDate   *string   `json:"expiryDate"`
	ItemCodes    *[]string `json:"itemCodes"`
	Description  *string   `json:"description"`
}

// PUT /api/product/update/:productId
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("productId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemName != nil {
			name := strings.TrimSpace(*body.ItemName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "itemName boş olamaz")
			}
			p.ItemName = name
		}
		if body.Category != nil {
			p.Category = *body.Category
		}
		if body.SupplierName != nil {
			p.SupplierName = *body.SupplierName
		}
		if body.Price != nil {
			p.Price = *body.Price
		}
		if body.ItemImage != nil {
			p.ItemImage = *body.ItemImage
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity negatif olamaz")
			}
			p.Quantity = *body.Quantity
		}
		if body.ItemCodes != nil {
			p.ItemCodes = *body.ItemCodes
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.PurchaseDate != nil {
			d, err := parseDate(*body.PurchaseDate, "purchaseDate")
			if err != nil {
				return err
			}
			p.PurchaseDate = d
		}
		if body.ExpiryDate != nil {
			d, err := parseDate(*body.ExpiryDate, "expiryDate")
			if err != nil {
				return err
			}
			p.ExpiryDate = d
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(newProductResponse(&p))
	}
}

// DELETE /api/product/delete/:productId
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("productId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Ürün başarıyla silindi",
		})
	}
}
