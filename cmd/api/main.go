package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-icarstok-ws/internal/handler"
	"go-icarstok-ws/internal/middleware"
	"go-icarstok-ws/internal/model"
	"go-icarstok-ws/internal/repository"
	"go-icarstok-ws/internal/service"
	"go-icarstok-ws/internal/ws"
	"go-icarstok-ws/pkg/database"
	"go-icarstok-ws/pkg/gemini"
	"go-icarstok-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	jwtpkg "go-icarstok-ws/pkg/jwt"
)

func main() {
	log := logger.Get()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (careful in production, prefer a dedicated migration tool)
	if err := db.AutoMigrate(&model.User{}, &model.Supplier{}, &model.Product{}, &model.Sale{}, &model.Purchase{}); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// 3. Setup WebSocket Hub (live pushes of stock/catalog changes)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. AI insight generator (optional: endpoints degrade when the key is missing)
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI insight endpoints will be unavailable")
	}
	generator := gemini.NewClient(geminiKey)

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, wsHub)
	ledgerService := service.NewLedgerService(productRepo, saleRepo, purchaseRepo, db, wsHub)
	dashService := service.NewDashboardService(productRepo, supplierRepo, saleRepo, purchaseRepo)
	insightService := service.NewInsightService(dashService, generator)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	supplierHandler := handler.NewSupplierHandler(catalogService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	dashHandler := handler.NewDashboardHandler(dashService)
	insightHandler := handler.NewInsightHandler(insightService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "IcarStok v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/products/:id/sales-summary", dashHandler.GetProductSalesSummary)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Post("/suppliers", supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Ledger: sales and purchases are create-only
	protected.Get("/sales", ledgerHandler.GetSales)
	protected.Get("/sales/:id", ledgerHandler.GetSale)
	protected.Post("/sales", ledgerHandler.SubmitSale)
	protected.Get("/purchases", ledgerHandler.GetPurchases)
	protected.Get("/purchases/:id", ledgerHandler.GetPurchase)
	protected.Post("/purchases", ledgerHandler.SubmitPurchase)

	// AI insights (advisory only)
	protected.Post("/insights/demand-forecast", insightHandler.PredictDemand)
	protected.Post("/insights/replenishment", insightHandler.SuggestReplenishment)
	protected.Post("/insights/anomalies", insightHandler.DetectAnomalies)
	protected.Post("/insights/performance", insightHandler.AnalyzePerformance)

	// WebSocket Route. The token travels as a query param since browsers
	// can't set headers on ws upgrades.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			claims, err := jwtpkg.ValidateToken(c.Query("token"))
			if err != nil {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			c.Locals("owner_id", claims.UserID)
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		ownerID := c.Locals("owner_id").(uuid.UUID)
		wsHub.Register <- &ws.Client{Conn: c, OwnerID: ownerID}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
