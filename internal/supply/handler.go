package supply

import (
	"strings"
	"time"

	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SupplyRequest struct {
	Category     string   `json:"category"`
	SupplierName string   `json:"supplierName"`
	ItemName     string   `json:"itemName"`
	Price        float64  `json:"price"`
	ItemImage    string   `json:"itemImage"`
	Quantity     int      `json:"quantity"`
	PurchaseDate string   `json:"purchaseDate"`
	ExpiryDate   string   `json:"expiryDate"`
	ItemCodes    []string `json:"itemCodes"`
}

type UpdateSupplyRequest struct {
	Category     *string   `json:"category"`
	SupplierName *string   `json:"supplierName"`
	ItemName     *string   `json:"itemName"`
	Price        *float64  `json:"price"`
	ItemImage    *string   `json:"itemImage"`
	Quantity     *int      `json:"quantity"`
	PurchaseDate *string   `json:"purchaseDate"`
	ExpiryDate   *string   `json:"expiryDate"`
	ItemCodes    *[]string `json:"itemCodes"`
}

type SupplyResponse struct {
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
	CreatedAt    string   `json:"createdAt"`
}

func newSupplyResponse(s *models.Supply) SupplyResponse {
	codes := s.ItemCodes
	if codes == nil {
		codes = []string{}
	}
	return SupplyResponse{
		ID:           s.ID,
		Category:     s.Category,
		SupplierName: s.SupplierName,
		ItemName:     s.ItemName,
		Price:        s.Price,
		ItemImage:    s.ItemImage,
		Quantity:     s.Quantity,
		PurchaseDate: s.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:   s.ExpiryDate.Format("2006-01-02"),
		ItemCodes:    codes,
		CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
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

// POST /api/supply/add
func AddSupplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)
		body.SupplierName = strings.TrimSpace(body.SupplierName)
		if body.ItemName == "" || body.SupplierName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itemName ve supplierName zorunludur")
		}
		if body.Quantity < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity en az 1 olmalıdır")
		}

		purchaseDate, err := parseDate(body.PurchaseDate, "purchaseDate")
		if err != nil {
			return err
		}
		expiryDate, err := parseDate(body.ExpiryDate, "expiryDate")
		if err != nil {
			return err
		}

		s := models.Supply{
			Category:     body.Category,
			SupplierName: body.SupplierName,
			ItemName:     body.ItemName,
			Price:        body.Price,
			ItemImage:    body.ItemImage,
			Quantity:     body.Quantity,
			PurchaseDate: purchaseDate,
			ExpiryDate:   expiryDate,
			ItemCodes:    body.ItemCodes,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(newSupplyResponse(&s))
	}
}

// GET /api/supply/all
func GetSuppliesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplies []models.Supply
		if err := database.DB.Order("created_at DESC").Find(&supplies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik kayıtları listelenemedi")
		}

		resp := make([]SupplyResponse, 0, len(supplies))
		for i := range supplies {
			resp = append(resp, newSupplyResponse(&supplies[i]))
		}

		return c.JSON(fiber.Map{"supplys": resp})
	}
}

// GET /api/supply/supplier-count
// Farklı tedarikçi adlarının sayısı.
func SupplierCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		if err := database.DB.Model(&models.Supply{}).
			Distinct("supplier_name").
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi sayısı alınamadı")
		}

		return c.JSON(fiber.Map{"count": count})
	}
}

// GET /api/supply/:supplyId
func GetSupplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supply
		if err := database.DB.First(&s, "id = ?", c.Params("supplyId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarik kaydı bulunamadı")
		}

		return c.JSON(newSupplyResponse(&s))
	}
}

// PUT /api/supply/update/:supplyId
func UpdateSupplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supply
		if err := database.DB.First(&s, "id = ?", c.Params("supplyId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarik kaydı bulunamadı")
		}

		var body UpdateSupplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemName != nil {
			name := strings.TrimSpace(*body.ItemName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "itemName boş olamaz")
			}
			s.ItemName = name
		}
		if body.SupplierName != nil {
			s.SupplierName = *body.SupplierName
		}
		if body.Category != nil {
			s.Category = *body.Category
		}
		if body.Price != nil {
			s.Price = *body.Price
		}
		if body.ItemImage != nil {
			s.ItemImage = *body.ItemImage
		}
		if body.Quantity != nil {
			if *body.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity en az 1 olmalıdır")
			}
			s.Quantity = *body.Quantity
		}
		if body.ItemCodes != nil {
			s.ItemCodes = *body.ItemCodes
		}
		if body.PurchaseDate != nil {
			d, err := parseDate(*body.PurchaseDate, "purchaseDate")
			if err != nil {
				return err
			}
			s.PurchaseDate = d
		}
		if body.ExpiryDate != nil {
			d, err := parseDate(*body.ExpiryDate, "expiryDate")
			if err != nil {
				return err
			}
			s.ExpiryDate = d
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik kaydı güncellenemedi")
		}

		return c.JSON(newSupplyResponse(&s))
	}
}

// DELETE /api/supply/delete/:supplyId
func DeleteSupplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supply
		if err := database.DB.First(&s, "id = ?", c.Params("supplyId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarik kaydı bulunamadı")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik kaydı silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Tedarik kaydı başarıyla silindi",
		})
	}
}
