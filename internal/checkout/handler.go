package checkout

import (
	"fmt"
	"strings"

	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

type CartItemRequest struct {
	ItemName string  `json:"itemName" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type AddCheckoutRequest struct {
	Name       string            `json:"name" validate:"required"`
	Address    string            `json:"address" validate:"required"`
	City       string            `json:"city" validate:"required"`
	CardNumber string            `json:"cardNumber" validate:"required"`
	ExpiryDate string            `json:"expiryDate" validate:"required"`
	CVV        string            `json:"cvv" validate:"required"`
	CartItems  []CartItemRequest `json:"cartItems" validate:"dive"`
}

type CheckoutResponse struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	CartItems  []models.CartItem `json:"cartItems"`
	TotalPrice float64           `json:"totalPrice"`
	CreatedAt  string            `json:"createdAt"`
}

func newCheckoutResponse(ch *models.Checkout) CheckoutResponse {
	items := ch.CartItems
	if items == nil {
		items = []models.CartItem{}
	}
	return CheckoutResponse{
		ID:         ch.ID,
		Name:       ch.Name,
		Address:    ch.Address,
		City:       ch.City,
		CartItems:  items,
		TotalPrice: ch.TotalPrice,
		CreatedAt:  ch.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/checkout/add
// Önce bütün sepet canlı stoğa karşı doğrulanır, sonra düşümler tek
// transaction içinde koşullu güncellemeyle yapılır: eşzamanlı iki
// checkout aynı stoğu eksiye düşüremez, guard tutmazsa işlemin tamamı
// geri alınır. Toplam, kuruş hassasiyetiyle decimal üzerinden hesaplanır.
func AddCheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddCheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.CartItems) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş olamaz")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura alanları eksik veya geçersiz")
		}

		// Ürün adı her adımda aynı biçimde kullanılır: doğrulama, düşüm
		// ve kaydedilen sepet satırı hep kırpılmış adı görür.
		for i := range body.CartItems {
			body.CartItems[i].ItemName = strings.TrimSpace(body.CartItems[i].ItemName)
			if body.CartItems[i].ItemName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Sepet satırında ürün adı eksik")
			}
		}

		// 1. geçiş: tüm satırlar stoğa karşı doğrulanır, hiçbir düşüm yapılmaz
		for _, item := range body.CartItems {
			var product models.Product
			if err := database.DB.Where("item_name = ?", item.ItemName).First(&product).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("Ürün bulunamadı: %s", item.ItemName))
			}
			if product.Quantity < item.Quantity {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("%s için yeterli stok yok. Mevcut: %d", item.ItemName, product.Quantity))
			}
		}

		// Toplam: Σ(adet × birim fiyat)
		total := decimal.Zero
		cartItems := make([]models.CartItem, 0, len(body.CartItems))
		for _, item := range body.CartItems {
			total = total.Add(
				decimal.NewFromFloat(item.Price).
					Mul(decimal.NewFromInt(int64(item.Quantity))))
			cartItems = append(cartItems, models.CartItem{
				ItemName: item.ItemName,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
		totalPrice, _ := total.Round(2).Float64()

		order := models.Checkout{
			Name:       body.Name,
			Address:    body.Address,
			City:       body.City,
			CardNumber: body.CardNumber,
			CardExpiry: body.ExpiryDate,
			CVV:        body.CVV,
			CartItems:  cartItems,
			TotalPrice: totalPrice,
		}

		// 2. geçiş: guard'lı düşüm + sipariş kaydı, tek transaction
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, item := range body.CartItems {
				res := tx.Model(&models.Product{}).
					Where("item_name = ? AND quantity >= ?", item.ItemName, item.Quantity).
					UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					// Doğrulamadan bu yana stok değişti
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("%s için yeterli stok yok", item.ItemName))
				}
			}

			return tx.Create(&order).Error
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(newCheckoutResponse(&order))
	}
}

// GET /api/checkout/all
func GetCheckoutsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var checkouts []models.Checkout
		if err := database.DB.Order("created_at DESC").Find(&checkouts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		resp := make([]CheckoutResponse, 0, len(checkouts))
		for i := range checkouts {
			resp = append(resp, newCheckoutResponse(&checkouts[i]))
		}

		return c.JSON(fiber.Map{"checkouts": resp})
	}
}

// GET /api/checkout/:checkoutId
func GetCheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ch models.Checkout
		if err := database.DB.First(&ch, "id = ?", c.Params("checkoutId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(newCheckoutResponse(&ch))
	}
}
