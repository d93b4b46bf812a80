package user

import (
	"strconv"
	"strings"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UpdateUserRequest struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	ProfilePicture *string `json:"profilePicture"`
}

// requireSelfOrAdmin: profil uçları sadece hesabın sahibine veya
// admin'e açıktır.
func requireSelfOrAdmin(c *fiber.Ctx, paramKey string) (uint, error) {
	caller, err := auth.CallerFromCtx(c)
	if err != nil {
		return 0, err
	}

	targetID, err := strconv.ParseUint(c.Params(paramKey), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
	}

	if !caller.IsAdmin && caller.UserID != uint(targetID) {
		return 0, fiber.NewError(fiber.StatusForbidden, "Sadece kendi hesabınızı yönetebilirsiniz")
	}

	return uint(targetID), nil
}

// GET /api/user/:userId
func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var u models.User
		if err := database.DB.First(&u, "id = ?", c.Params("userId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(auth.NewUserResponse(&u))
	}
}

// PUT /api/user/update/:userId
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := requireSelfOrAdmin(c, "userId")
		if err != nil {
			return err
		}

		var u models.User
		if err := database.DB.First(&u, "id = ?", targetID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Username != nil {
			username := strings.TrimSpace(*body.Username)
			if len(username) < 3 {
				return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı en az 3 karakter olmalıdır")
			}
			u.Username = username
		}
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email boş olamaz")
			}
			u.Email = email
		}
		if body.Password != nil {
			if len(*body.Password) < 6 {
				return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalıdır")
			}
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			u.PasswordHash = string(hash)
		}
		if body.ProfilePicture != nil {
			u.ProfilePicture = *body.ProfilePicture
		}

		if err := database.DB.Save(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Bu email veya kullanıcı adı zaten kayıtlı")
		}

		return c.JSON(auth.NewUserResponse(&u))
	}
}

// DELETE /api/user/delete/:userId
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := requireSelfOrAdmin(c, "userId")
		if err != nil {
			return err
		}

		var u models.User
		if err := database.DB.First(&u, "id = ?", targetID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if u.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin kullanıcı silinemez")
		}

		if err := database.DB.Delete(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Kullanıcı başarıyla silindi",
		})
	}
}
