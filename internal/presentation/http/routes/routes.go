package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backoffice/internal/config"
	domainRepo "github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/internal/presentation/http/handler"
	"github.com/restopos/backoffice/internal/presentation/http/middleware"
	"github.com/restopos/backoffice/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
	MenuItem *handler.MenuItemHandler
	Category *handler.CategoryHandler
	User     *handler.UserHandler
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
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Cart
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:menu_item_id", h.Cart.UpdateItem)
		cart.PUT("/items/:menu_item_id/price", h.Cart.SetPrice)
		cart.DELETE("/items/:menu_item_id", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		// Checkout is idempotent so a retried commit replays the
		// original order
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/payment-methods", h.Order.PaymentMethods)
		orders.GET("/number/:orderNumber", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/void", middleware.RequireAdmin(), h.Order.Void)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/weekly", h.Report.Weekly)
		reports.GET("/monthly", h.Report.Monthly)
	}

	// Menu items
	menuItems := protected.Group("/menu-items")
	{
		menuItems.GET("", h.MenuItem.List)
		menuItems.GET("/:id", h.MenuItem.Get)
		menuItems.POST("", middleware.RequireAdmin(), h.MenuItem.Create)
		menuItems.PUT("/:id", middleware.RequireAdmin(), h.MenuItem.Update)
		menuItems.DELETE("/:id", middleware.RequireAdmin(), h.MenuItem.Delete)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", middleware.RequireAdmin(), h.Category.Create)
		categories.PUT("/:id", middleware.RequireAdmin(), h.Category.Update)
		categories.DELETE("/:id", middleware.RequireAdmin(), h.Category.Delete)
	}

	// Users (Admin)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
