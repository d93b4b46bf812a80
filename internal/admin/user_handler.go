package admin

import (
	"fmt"
	"strings"

	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AssignRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PUT /api/admin/assign-role
// Sadece inventory_manager ve supplier atanabilir; admin bayrağı rolden
// bağımsızdır ve buradan değiştirilemez.
func AssignRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssignRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Role == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve rol zorunludur")
		}

		role, ok := models.ParseRole(body.Role)
		if !ok || (role != models.RoleInventoryManager && role != models.RoleSupplier) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		before := auth.NewUserResponse(&user)
		user.Role = role

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rol atanamadı")
		}

		if caller, err := auth.CallerUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      caller.ID,
				UserName:    caller.Username,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Rol atandı: %s -> %s", user.Email, role),
				Before:      before,
				After:       auth.NewUserResponse(&user),
			})
		}

		return c.JSON(auth.NewUserResponse(&user))
	}
}

// GET /api/admin/get-users
func GetUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		resp := make([]auth.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, auth.NewUserResponse(&users[i]))
		}

		return c.JSON(fiber.Map{"users": resp})
	}
}

// DELETE /api/admin/delete-user/:id
// Admin hesapları bu uçtan silinemez.
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin kullanıcı silinemez")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		if caller, err := auth.CallerUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      caller.ID,
				UserName:    caller.Username,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Kullanıcı silindi: %s", user.Email),
				Before:      auth.NewUserResponse(&user),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Kullanıcı başarıyla silindi",
		})
	}
}
