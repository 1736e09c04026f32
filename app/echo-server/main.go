package main

import (
	"context"
	"fmt"
	"log"
	"myCatalogStore/app/echo-server/metrics"
	"myCatalogStore/app/echo-server/router"
	"myCatalogStore/business/orders"
	"myCatalogStore/business/pricing"
	"myCatalogStore/business/product"
	userService "myCatalogStore/business/user"
	"myCatalogStore/internal/middleware"
	psqlRepo "myCatalogStore/internal/repository/postgres"
	redisRepo "myCatalogStore/internal/repository/redis"
	"myCatalogStore/internal/rest"
	"myCatalogStore/pkg/config"
	"myCatalogStore/pkg/database"
	"myCatalogStore/pkg/database/redis"
	"myCatalogStore/pkg/logger"
	catalogMetrics "myCatalogStore/pkg/metrics"
	"myCatalogStore/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	catalogMetrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Token store is optional. Without it tokens are checked for signature
	// and expiry only, and logout is a no-op.
	var tokenStore userService.TokenStore
	authRequired := middleware.AuthMiddleware()

	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redis.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close Redis client", "error", err)
			}
		}()

		tokenRepo := redisRepo.NewTokenRepository(redisClient)
		tokenStore = tokenRepo
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)

		logger.Info("Redis token store enabled")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	pricingRepo := psqlRepo.NewPricingRepository(db)

	// Init service
	userService := userService.NewUserService(userRepo, validate, tokenStore)
	productService := product.NewProductService(productsRepo, validate)
	pricingService := pricing.NewPricingService(pricingRepo, productsRepo)
	ordersService := orders.NewOrdersService(ordersRepo, userRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	productHandler := rest.NewProductHandler(productService)
	pricingHandler := rest.NewPricingHandler(pricingService)
	ordersHandler := rest.NewOrdersHandler(ordersService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.RequestDuration())

	e.GET("/metrics", metrics.Handler())
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, userHandler, authRequired)
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired)
	router.SetupPricingRoutes(api, pricingHandler, authRequired)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server stopped")
}
