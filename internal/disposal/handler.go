package disposal

import (
	"fmt"
	"strings"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddDisposalRequest struct {
	ItemName  string   `json:"itemName"`
	Category  string   `json:"category"`
	ItemCodes []string `json:"itemCodes"`
	Location  string   `json:"location"`
}

type DisposalResponse struct {
	ID        uint     `json:"id"`
	ItemName  string   `json:"itemName"`
	Category  string   `json:"category"`
	ItemCodes []string `json:"itemCodes"`
	Location  string   `json:"location"`
	CreatedAt string   `json:"createdAt"`
}

func newDisposalResponse(d *models.Disposal) DisposalResponse {
	codes := d.ItemCodes
	if codes == nil {
		codes = []string{}
	}
	return DisposalResponse{
		ID:        d.ID,
		ItemName:  d.ItemName,
		Category:  d.Category,
		ItemCodes: codes,
		Location:  d.Location,
		CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// codePattern: kodu JSON metninde tırnaklı arayan LIKE deseni üretir.
// Kod içindeki %, _ ve \ joker olarak yorumlanmasın diye kaçırılır.
func codePattern(code string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return `%"` + r.Replace(code) + `"%`
}

// findProductByCodes: kod kümesi gönderilen kodlardan en az biriyle
// kesişen ürünü bulur. Kodlar JSON text içinde tırnaklı arandığından
// alt dize çakışması olmaz.
func findProductByCodes(codes []string) (*models.Product, error) {
	if len(codes) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	cond := database.DB.Where(`item_codes LIKE ? ESCAPE '\'`, codePattern(codes[0]))
	for _, code := range codes[1:] {
		cond = cond.Or(`item_codes LIKE ? ESCAPE '\'`, codePattern(code))
	}

	var product models.Product
	if err := database.DB.Where(cond).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// POST /api/disposal/add
// İmha akışı: gönderilen kodları taşıyan ürün bulunur, imha kaydı
// açılır ve kodlar ürünün listesinden düşülür. Kod listesi boşalsa bile
// ürün silinmez. Aynı kod ikinci kez imha edilemez (artık hiçbir
// üründe bulunmadığından 404 döner).
func AddDisposalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddDisposalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)
		body.Location = strings.TrimSpace(body.Location)
		if body.ItemName == "" || body.Category == "" || body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itemName, category ve location zorunludur")
		}
		if len(body.ItemCodes) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir itemCode gereklidir")
		}

		product, err := findProductByCodes(body.ItemCodes)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kaynak ürün bulunamadı")
		}

		toRemove := make(map[string]bool, len(body.ItemCodes))
		for _, code := range body.ItemCodes {
			toRemove[code] = true
		}

		remaining := make([]string, 0, len(product.ItemCodes))
		for _, code := range product.ItemCodes {
			if !toRemove[code] {
				remaining = append(remaining, code)
			}
		}

		entry := models.Disposal{
			ItemName:  body.ItemName,
			Category:  body.Category,
			ItemCodes: body.ItemCodes,
			Location:  body.Location,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			// Sütun adıyla Update serializer'ı atladığından struct
			// üzerinden güncellenir, kodlar JSON olarak yazılır.
			product.ItemCodes = remaining
			return tx.Model(product).Select("item_codes").Updates(product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İmha kaydı oluşturulamadı")
		}

		if caller, cErr := auth.CallerUser(c); cErr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      caller.ID,
				UserName:    caller.Username,
				EntityType:  "disposal",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("İmha edildi: %s [%s] (%s)", entry.ItemName, strings.Join(entry.ItemCodes, ", "), entry.Location),
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(newDisposalResponse(&entry))
	}
}

// GET /api/disposal/all
func GetDisposalsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var disposals []models.Disposal
		if err := database.DB.Order("created_at DESC, id DESC").Find(&disposals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İmha kayıtları listelenemedi")
		}

		resp := make([]DisposalResponse, 0, len(disposals))
		for i := range disposals {
			resp = append(resp, newDisposalResponse(&disposals[i]))
		}

		return c.JSON(fiber.Map{"disposalItems": resp})
	}
}

// GET /api/disposal/count
func DisposalCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		if err := database.DB.Model(&models.Disposal{}).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İmha sayısı alınamadı")
		}

		return c.JSON(fiber.Map{"count": count})
	}
}

// GET /api/disposal/:disposalId
func GetDisposalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d models.Disposal
		if err := database.DB.First(&d, "id = ?", c.Params("disposalId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İmha kaydı bulunamadı")
		}

		return c.JSON(newDisposalResponse(&d))
	}
}

type UpdateDisposalRequest struct {
	ItemName  *string   `json:"itemName"`
	Category  *string   `json:"category"`
	ItemCodes *[]string `json:"itemCodes"`
	Location  *string   `json:"location"`
}

// PUT /api/disposal/update/:disposalId
// Yalnızca kayıt alanlarını düzeltir; ürün kod listesine geri dokunmaz.
func UpdateDisposalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d models.Disposal
		if err := database.DB.First(&d, "id = ?", c.Params("disposalId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İmha kaydı bulunamadı")
		}

		var body UpdateDisposalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemName != nil {
			d.ItemName = *body.ItemName
		}
		if body.Category != nil {
			d.Category = *body.Category
		}
		if body.ItemCodes != nil {
			d.ItemCodes = *body.ItemCodes
		}
		if body.Location != nil {
			d.Location = *body.Location
		}

		if err := database.DB.Save(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İmha kaydı güncellenemedi")
		}

		return c.JSON(newDisposalResponse(&d))
	}
}

// DELETE /api/disposal/delete/:disposalId
func DeleteDisposalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d models.Disposal
		if err := database.DB.First(&d, "id = ?", c.Params("disposalId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İmha kaydı bulunamadı")
		}

		if err := database.DB.Delete(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İmha kaydı silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "İmha kaydı başarıyla silindi",
		})
	}
}
