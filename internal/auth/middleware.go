package auth

import (
	"fmt"
	"strings"

	"envanter-backend/internal/config"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey  = "user_id"
	CtxIsAdminKey = "is_admin"
	CtxRoleKey    = "user_role"
)

// Caller: isteği yapan tarafın çözülmüş kimliği. Middleware bir kez
// çözer, iş akışları bu değeri açık parametre olarak alır.
type Caller struct {
	UserID  uint
	IsAdmin bool
	Role    models.UserRole
}

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxIsAdminKey, claims.IsAdmin)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

// CallerFromCtx: middleware'in koyduğu kimlik bilgisini toplar.
func CallerFromCtx(c *fiber.Ctx) (Caller, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Kimlik bilgisi alınamadı")
	}

	isAdmin, _ := c.Locals(CtxIsAdminKey).(bool)
	role, ok := c.Locals(CtxRoleKey).(models.UserRole)
	if !ok {
		role = models.RoleNone
	}

	return Caller{UserID: userID, IsAdmin: isAdmin, Role: role}, nil
}

// CallerUser: token'ın öznesini veritabanından yükler. Kullanıcı artık
// yoksa 404 döner (token geçerli olsa bile).
func CallerUser(c *fiber.Ctx) (*models.User, error) {
	caller, err := CallerFromCtx(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", caller.UserID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
	}
	return &user, nil
}

// RequireAdmin: admin bayrağı olmayan herkesi reddeder; rol ne olursa olsun.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals(CtxIsAdminKey).(bool)
		if !ok || !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem sadece admin içindir")
		}
		return c.Next()
	}
}

// RequireRole: çağıranın rolü izin verilen kümede olmalı. Adminler her
// rol kapısından geçer.
func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals(CtxIsAdminKey).(bool); ok && isAdmin {
			return c.Next()
		}

		role, ok := c.Locals(CtxRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}
