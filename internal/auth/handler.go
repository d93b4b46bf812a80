package auth

import (
	"errors"
	"strings"

	"envanter-backend/internal/config"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	GooglePhotoURL string `json:"googlePhotoUrl"`
}

type UserResponse struct {
	ID             uint            `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	ProfilePicture string          `json:"profilePicture"`
	IsAdmin        bool            `json:"isAdmin"`
	Role           models.UserRole `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		Role:           u.Role,
	}
}

type authResponse struct {
	UserResponse
	Token string `json:"token"`
}

// POST /api/auth/signup
func SignupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tüm alanlar zorunludur (username, email, password)")
		}

		// Email/username benzersizliği
		var count int64
		database.DB.Model(&models.User{}).
			Where("email = ? OR username = ?", body.Email, body.Username).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu email veya kullanıcı adı zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Username:       body.Username,
			Email:          body.Email,
			PasswordHash:   string(hash),
			ProfilePicture: models.DefaultProfilePicture,
			Role:           models.RoleUser, // varsayılan rol
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(authResponse{
			UserResponse: NewUserResponse(&user),
			Token:        token,
		})
	}
}

// POST /api/auth/signin
func SigninHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SigninRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunludur")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şifre")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(authResponse{
			UserResponse: NewUserResponse(&user),
			Token:        token,
		})
	}
}

// POST /api/auth/google
// İlk girişte kullanıcıyı otomatik açar: üretilmiş kullanıcı adı ve
// rastgele şifre ile.
func GoogleHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GoogleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve isim zorunludur")
		}

		var user models.User
		err := database.DB.Where("email = ?", body.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Rastgele şifre; kullanıcı istediğinde sıfırlayabilir
			randomPassword := uuid.NewString()
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(randomPassword), bcrypt.DefaultCost)
			if hashErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}

			username := strings.ReplaceAll(strings.ToLower(body.Name), " ", "") + uuid.NewString()[:4]

			user = models.User{
				Username:       username,
				Email:          body.Email,
				PasswordHash:   string(hash),
				ProfilePicture: body.GooglePhotoURL,
				Role:           models.RoleUser,
			}
			if user.ProfilePicture == "" {
				user.ProfilePicture = models.DefaultProfilePicture
			}

			if err := database.DB.Create(&user).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
			}
		} else if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sorgulanamadı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(authResponse{
			UserResponse: NewUserResponse(&user),
			Token:        token,
		})
	}
}

// POST /api/auth/signout
// Bearer taşımada sunucu tarafında düşürülecek durum yok; istemci
// token'ı atar.
func SignoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Çıkış yapıldı",
		})
	}
}

// POST /api/admin/login
// Normal girişle aynı, ek olarak admin bayrağı arar.
func AdminLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SigninRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunludur")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şifre")
		}

		if !user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Bu giriş sadece admin içindir")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(authResponse{
			UserResponse: NewUserResponse(&user),
			Token:        token,
		})
	}
}
