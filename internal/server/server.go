package server

import (
	"log"
	"strings"

	"envanter-backend/internal/admin"
	"envanter-backend/internal/audit"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/checkout"
	"envanter-backend/internal/config"
	"envanter-backend/internal/disposal"
	"envanter-backend/internal/models"
	"envanter-backend/internal/product"
	"envanter-backend/internal/supply"
	"envanter-backend/internal/upcoming"
	"envanter-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New: uygulamayı kurar ve tüm route'ları bağlar. main dışında testler
// de aynı uygulamayı ayağa kaldırır.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success":    false,
					"statusCode": e.Code,
					"message":    e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success":    false,
				"statusCode": fiber.StatusInternalServerError,
				"message":    "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/signup", auth.SignupHandler(cfg))
	api.Post("/auth/signin", auth.SigninHandler(cfg))
	api.Post("/auth/google", auth.GoogleHandler(cfg))
	api.Post("/auth/signout", auth.SignoutHandler())
	api.Post("/admin/login", auth.AdminLoginHandler(cfg))

	jwtRequired := auth.JWTMiddleware(cfg)

	// Admin
	adminRoutes := api.Group("/admin", jwtRequired, auth.RequireAdmin())
	adminRoutes.Put("/assign-role", admin.AssignRoleHandler())
	adminRoutes.Get("/get-users", admin.GetUsersHandler())
	adminRoutes.Delete("/delete-user/:id", admin.DeleteUserHandler())
	adminRoutes.Get("/supplier-orders", admin.SupplierOrdersHandler())
	adminRoutes.Post("/add-to-system/:supplyId", admin.AddToSystemHandler())
	adminRoutes.Get("/user-count", admin.UserCountHandler())
	adminRoutes.Get("/inventory-count", admin.InventoryCountHandler())
	adminRoutes.Get("/product-count", admin.ProductCountHandler())

	// Ürünler
	productRoutes := api.Group("/product")
	productRoutes.Get("/search", product.SearchProductsHandler())
	productRoutes.Get("/expiring", product.ExpiringProductsHandler())
	productRoutes.Get("/expired", product.ExpiredProductsHandler())
	productRoutes.Get("/count", jwtRequired, auth.RequireAdmin(), admin.ProductCountHandler())
	productRoutes.Post("/add", jwtRequired, auth.RequireAdmin(), product.AddProductHandler())
	productRoutes.Get("/all", product.GetProductsHandler())
	productRoutes.Get("/:productId", product.GetProductHandler())
	productRoutes.Put("/update/:productId", jwtRequired, auth.RequireAdmin(), product.UpdateProductHandler())
	productRoutes.Delete("/delete/:productId", jwtRequired, auth.RequireAdmin(), product.DeleteProductHandler())

	// Tedarik
	supplyRoutes := api.Group("/supply")
	supplyRoutes.Get("/supplier-count", supply.SupplierCountHandler())
	supplyRoutes.Post("/add", jwtRequired, auth.RequireRole(models.RoleSupplier), supply.AddSupplyHandler())
	supplyRoutes.Get("/all", supply.GetSuppliesHandler())
	supplyRoutes.Get("/:supplyId", jwtRequired, supply.GetSupplyHandler())
	supplyRoutes.Put("/update/:supplyId", jwtRequired, auth.RequireRole(models.RoleSupplier), supply.UpdateSupplyHandler())
	supplyRoutes.Delete("/delete/:supplyId", jwtRequired, auth.RequireRole(models.RoleSupplier), supply.DeleteSupplyHandler())

	// İmha
	disposalRoutes := api.Group("/disposal")
	disposalRoutes.Post("/add", jwtRequired, disposal.AddDisposalHandler())
	disposalRoutes.Get("/all", disposal.GetDisposalsHandler())
	disposalRoutes.Get("/count", disposal.DisposalCountHandler())
	disposalRoutes.Get("/:disposalId", jwtRequired, auth.RequireAdmin(), disposal.GetDisposalHandler())
	disposalRoutes.Put("/update/:disposalId", jwtRequired, auth.RequireAdmin(), disposal.UpdateDisposalHandler())
	disposalRoutes.Delete("/delete/:disposalId", jwtRequired, auth.RequireAdmin(), disposal.DeleteDisposalHandler())

	// Checkout
	checkoutRoutes := api.Group("/checkout")
	checkoutRoutes.Post("/add", jwtRequired, checkout.AddCheckoutHandler())
	checkoutRoutes.Get("/all", jwtRequired, auth.RequireAdmin(), checkout.GetCheckoutsHandler())
	checkoutRoutes.Get("/:checkoutId", jwtRequired, auth.RequireAdmin(), checkout.GetCheckoutHandler())

	// Yaklaşan siparişler (envanter işaretleme)
	upcomingRoutes := api.Group("/upcoming", jwtRequired, auth.RequireRole(models.RoleInventoryManager))
	upcomingRoutes.Get("/upcoming-orders", upcoming.GetUpcomingOrdersHandler())
	upcomingRoutes.Put("/mark/:orderId", upcoming.MarkOrderHandler())

	// Kullanıcı profili
	userRoutes := api.Group("/user", jwtRequired)
	userRoutes.Get("/:userId", user.GetUserHandler())
	userRoutes.Put("/update/:userId", user.UpdateUserHandler())
	userRoutes.Delete("/delete/:userId", user.DeleteUserHandler())

	// Audit logları
	api.Get("/audit-logs", jwtRequired, auth.RequireAdmin(), audit.ListAuditLogsHandler())

	return app
}
