package routes

import (
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/config"
	domainRepo "github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/handler"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/middleware"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Bill     *handler.BillHandler
	Stock    *handler.StockHandler
	Product  *handler.ProductHandler
	Tenant   *handler.TenantHandler
	Receipt  *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware())

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerCartRoutes(protected, h)
		registerCheckoutRoutes(protected, h, deps)
		registerBillRoutes(protected, h)
		registerStockRoutes(protected, h)
		registerProductRoutes(protected, h)
		registerTenantRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.PUT("/adjustments", h.Cart.SetAdjustments)
	}
}

func registerCheckoutRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Checkout requires an Idempotency-Key so a retried request replays the
	// committed bill instead of charging twice.
	rg.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.POS.IdempotencyTTL,
	}), h.Checkout.Checkout)

	rg.POST("/bills/:id/void", middleware.RequireRole("manager", "admin"), h.Checkout.Void)
}

func registerBillRoutes(rg *gin.RouterGroup, h *Handlers) {
	bills := rg.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/:id/sale", h.Bill.GetSale)
		bills.GET("/:id/movements", h.Stock.MovementsForBill)
	}

	rg.GET("/sales", h.Bill.ListSales)
}

func registerStockRoutes(rg *gin.RouterGroup, h *Handlers) {
	stock := rg.Group("/stock")
	{
		stock.POST("/adjust", middleware.RequireRole("manager", "admin"), h.Stock.Adjust)
		stock.GET("/movements", h.Stock.ListMovements)
		stock.GET("/low", h.Stock.LowStock)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole("manager", "admin"), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole("manager", "admin"), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.Product.Delete)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", middleware.RequireRole("manager", "admin"), h.Product.CreateCategory)
	}
}

func registerTenantRoutes(rg *gin.RouterGroup, h *Handlers) {
	tenant := rg.Group("/tenant")
	{
		tenant.GET("/settings", h.Tenant.GetSettings)
		tenant.PUT("/settings", middleware.RequireRole("manager", "admin"), h.Tenant.UpdateSettings)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Receipt.Status)
		printer.POST("/receipt/:billId", h.Receipt.PrintReceipt)
	}
}
