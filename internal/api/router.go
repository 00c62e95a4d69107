package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aro-bazzar/storefront-api/internal/api/handler"
	"github.com/aro-bazzar/storefront-api/internal/api/middleware"
	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/service"
	"github.com/aro-bazzar/storefront-api/internal/infrastructure/config"
	storemongo "github.com/aro-bazzar/storefront-api/internal/infrastructure/db/mongo"
	storeredis "github.com/aro-bazzar/storefront-api/internal/infrastructure/db/redis"
	"github.com/aro-bazzar/storefront-api/internal/infrastructure/feed"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, hub *feed.Hub, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	productRepo := storemongo.NewProductRepository(db)
	categoryRepo := storemongo.NewCategoryRepository(db)
	orderRepo := storemongo.NewOrderRepository(db)
	authRepo := storemongo.NewAuthRepository(db)
	idemStore := storeredis.NewIdempotencyStore(rdb)

	// --- Services ---
	catalogService := service.NewCatalogService(productRepo, categoryRepo, log)
	cartService := service.NewCartService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, cartService, idemStore, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	userHandler := handler.NewUserHandler(authService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	feedHandler := handler.NewFeedHandler(hub)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/v1")

	// --- Catalog: reads are public, mutations admin-only ---
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.POST("/products", productHandler.Create, authRequired, adminOnly)
	v1.PATCH("/products/:id", productHandler.Update, authRequired, adminOnly)
	v1.DELETE("/products/:id", productHandler.Delete, authRequired, adminOnly)

	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create, authRequired, adminOnly)
	v1.DELETE("/categories/:id", categoryHandler.Delete, authRequired, adminOnly)

	// --- User directory (admin) ---
	v1.GET("/users", userHandler.List, authRequired, adminOnly)

	// --- Cart ---
	v1.GET("/cart", cartHandler.Get, authRequired)
	v1.POST("/cart/items", cartHandler.AddItem, authRequired)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem, authRequired)

	// --- Orders ---
	v1.POST("/orders", orderHandler.Place, authRequired)
	v1.GET("/orders", orderHandler.List, authRequired)
	v1.GET("/orders/:id", orderHandler.Get, authRequired)
	v1.PUT("/orders/:id/status", orderHandler.UpdateStatus, authRequired, adminOnly)

	// --- Live feeds (SSE) ---
	v1.GET("/feed/products", feedHandler.Products)
	v1.GET("/feed/orders", feedHandler.Orders, authRequired)

	return e
}
