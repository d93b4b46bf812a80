package admin

import (
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func countOf(model any, failMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		if err := database.DB.Model(model).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, failMsg)
		}
		return c.JSON(fiber.Map{"count": count})
	}
}

// GET /api/admin/user-count
func UserCountHandler() fiber.Handler {
	return countOf(&models.User{}, "Kullanıcı sayısı alınamadı")
}

// GET /api/admin/inventory-count
func InventoryCountHandler() fiber.Handler {
	return countOf(&models.InventoryItem{}, "Envanter sayısı alınamadı")
}

// GET /api/admin/product-count
func ProductCountHandler() fiber.Handler {
	return countOf(&models.Product{}, "Ürün sayısı alınamadı")
}
