package main

import (
	"log"
	"strings"

	"atolye-backend/internal/admin"
	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/config"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"
	"atolye-backend/internal/orders"
	"atolye-backend/internal/release"
	"atolye-backend/internal/reports"
	"atolye-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Idempotency-Key",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Depo yönetimi
	adminRoutes.Post("/inventories", admin.CreateInventoryHandler())
	adminRoutes.Get("/inventories", admin.ListInventoriesHandler())
	adminRoutes.Get("/inventories/:id", admin.GetInventoryHandler())
	adminRoutes.Put("/inventories/:id", admin.UpdateInventoryHandler())
	adminRoutes.Delete("/inventories/:id", admin.DeleteInventoryHandler())
	adminRoutes.Post("/inventories/:id/admin", admin.CreateInventoryAdminHandler())
	adminRoutes.Get("/inventories/:id/admins", admin.ListInventoryAdminsHandler())

	// Malzeme tanımları
	adminRoutes.Post("/materials", stock.CreateMaterialHandler())
	adminRoutes.Put("/materials/:id", stock.UpdateMaterialHandler())

	// Ortak (auth gerektiren) route'lar

	// Stok görünümleri
	protected.Get("/materials", stock.ListMaterialsHandler())
	protected.Get("/materials/:id", stock.GetMaterialHandler())
	protected.Get("/inventories/:id/stock", stock.InventoryStockHandler())

	// Stok hareketleri
	protected.Post("/purchases", stock.CreatePurchaseHandler())
	protected.Post("/transfers", stock.CreateTransferHandler())
	protected.Post("/pieces/:id/cuts", stock.CreateCuttingFileHandler(cfg))

	// Malzeme çıkışları ve düzeltmeleri
	protected.Get("/releases", release.ListReleasesHandler())
	protected.Post("/releases", release.CreateReleaseHandler())
	protected.Post("/releases/:id/edit", release.EditReleaseHandler())
	protected.Post("/orders/:code/additional-release", release.AdditionalReleaseHandler(cfg))

	// Siparişler
	protected.Get("/order-containers", orders.ListContainersHandler())
	protected.Get("/order-containers/:id", orders.GetContainerHandler())
	protected.Post("/order-containers", orders.CreateContainerHandler())
	protected.Post("/orders/:code/advance", orders.AdvanceOrderHandler())

	// Raporlar
	protected.Get("/reports/stock.xlsx", reports.StockReportHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
