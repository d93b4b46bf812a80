package admin

import (
	"errors"
	"fmt"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddToSystemRequest struct {
	Quantity int `json:"quantity"`
}

// GET /api/admin/supplier-orders
// Onay bekleyen tedarik kayıtları, en yenisi önce.
func SupplierOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplies []models.Supply
		if err := database.DB.Order("created_at DESC").Find(&supplies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik kayıtları listelenemedi")
		}

		return c.JSON(fiber.Map{"supplies": supplies})
	}
}

// POST /api/admin/add-to-system/:supplyId
// Tedarik onay akışı: istenen miktar envantere aktarılır. Aynı
// (itemName, supplierName, category) üçlüsüne sahip envanter kaydı
// varsa miktarı artırılır, yoksa tedarik klonlanarak yeni kayıt açılır.
// Tedarik tamamen tüketildiyse silinir, değilse miktarı düşülür. Tüm
// adımlar tek transaction içinde çalışır.
func AddToSystemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplyID := c.Params("supplyId")

		var body AddToSystemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var supply models.Supply
		if err := database.DB.First(&supply, "id = ?", supplyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarik kaydı bulunamadı")
		}

		if body.Quantity < 1 || body.Quantity > supply.Quantity {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Miktar 1 ile %d arasında olmalıdır", supply.Quantity))
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var item models.InventoryItem
			err := tx.Where("item_name = ? AND supplier_name = ? AND category = ?",
				supply.ItemName, supply.SupplierName, supply.Category).
				First(&item).Error

			switch {
			case err == nil:
				if err := tx.Model(&item).
					UpdateColumn("quantity", gorm.Expr("quantity + ?", body.Quantity)).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				newItem := models.InventoryFromSupply(&supply, body.Quantity)
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			default:
				return err
			}

			if body.Quantity == supply.Quantity {
				return tx.Delete(&supply).Error
			}
			return tx.Model(&supply).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", body.Quantity)).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarik envantere aktarılamadı")
		}

		if caller, cErr := auth.CallerUser(c); cErr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      caller.ID,
				UserName:    caller.Username,
				EntityType:  "supply",
				EntityID:    supply.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Envantere aktarıldı: %s x%d (%s)", supply.ItemName, body.Quantity, supply.SupplierName),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Tedarik envantere eklendi",
		})
	}
}
