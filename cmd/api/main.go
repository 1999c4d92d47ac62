package main

import (
	"log"

	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/config"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/cart"
	"github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/database"
	"github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/handler"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/routes"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/printer"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.POS); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	billRepo := repository.NewBillRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the in-memory cart session store
	cartStore := cart.NewStore()

	// Initialize services
	cartService := service.NewCartService(cartStore, productRepo, tenantRepo)
	checkoutService := service.NewCheckoutService(cartService, checkoutRepo, billRepo, saleRepo)
	billService := service.NewBillService(billRepo, saleRepo)
	stockService := service.NewStockService(stockRepo, productRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	tenantService := service.NewTenantService(tenantRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	receiptService := service.NewReceiptService(thermalPrinter, billRepo, tenantRepo, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Bill:     handler.NewBillHandler(billService),
		Stock:    handler.NewStockHandler(stockService),
		Product:  handler.NewProductHandler(productService),
		Tenant:   handler.NewTenantHandler(tenantService),
		Receipt:  handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
