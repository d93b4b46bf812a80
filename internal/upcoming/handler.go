package upcoming

import (
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpcomingOrderResponse struct {
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
	Marked       bool     `json:"marked"`
	CreatedAt    string   `json:"createdAt"`
}

func newUpcomingOrderResponse(item *models.InventoryItem) UpcomingOrderResponse {
	codes := item.ItemCodes
	if codes == nil {
		codes = []string{}
	}
	return UpcomingOrderResponse{
		ID:           item.ID,
		Category:     item.Category,
		SupplierName: item.SupplierName,
		ItemName:     item.ItemName,
		Price:        item.Price,
		ItemImage:    item.ItemImage,
		Quantity:     item.Quantity,
		PurchaseDate: item.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:   item.ExpiryDate.Format("2006-01-02"),
		ItemCodes:    codes,
		Marked:       item.Marked,
		CreatedAt:    item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/upcoming/upcoming-orders
// Envanter kayıtları, en yenisi önce.
func GetUpcomingOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.InventoryItem
		if err := database.DB.Order("created_at DESC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yaklaşan siparişler listelenemedi")
		}

		resp := make([]UpcomingOrderResponse, 0, len(items))
		for i := range items {
			resp = append(resp, newUpcomingOrderResponse(&items[i]))
		}

		return c.JSON(resp)
	}
}

// PUT /api/upcoming/mark/:orderId
func MarkOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.InventoryItem
		if err := database.DB.First(&item, "id = ?", c.Params("orderId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := database.DB.Model(&item).Update("marked", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş işaretlenemedi")
		}

		item.Marked = true
		return c.JSON(newUpcomingOrderResponse(&item))
	}
}
