package main

import (
	"spc-api/internal/handler"
	"spc-api/internal/middleware"
	"spc-api/internal/model"
	"spc-api/internal/service"
	"spc-api/pkg/config"
	"spc-api/pkg/database"
	"spc-api/pkg/jwtutil"
	"spc-api/pkg/logger"
	"spc-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting pharmaceutical supply chain API...", zap.String("environment", cfg.Server.Env))

	// Initialize database and run migrations
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.Role{},
		&model.User{},
		&model.Supplier{},
		&model.Drug{},
		&model.Stock{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := seedRoles(); err != nil {
		log.Fatal("Failed to seed roles", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire services into the handler package
	db := database.GetDB()
	handler.InitAuthHandler(service.NewAuthService(db, &cfg.JWT))
	handler.InitDrugHandler(service.NewDrugService(db))
	handler.InitSupplierHandler(service.NewSupplierService(db))
	handler.InitOrderHandler(service.NewOrderService(db))
	handler.InitStockHandler(service.NewStockService(db))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(requestLogger())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/register", handler.Register)
	auth.POST("/refresh-token", handler.RefreshToken)
	auth.POST("/revoke", handler.RevokeToken)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Mutations on the inventory require an elevated role
	manage := middleware.RequireRoles(model.RoleAdmin, model.RolePharmacist)

	drugs := api.Group("/drugs")
	drugs.GET("", handler.ListDrugs)
	drugs.GET("/:id", handler.GetDrug)
	drugs.GET("/:id/stocks", handler.ListDrugStocks)
	drugs.POST("", handler.CreateDrug, manage)
	drugs.PUT("/:id", handler.UpdateDrug, manage)
	drugs.DELETE("/:id", handler.DeleteDrug, manage)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", handler.ListSuppliers)
	suppliers.GET("/:id", handler.GetSupplier)
	suppliers.POST("", handler.CreateSupplier)
	suppliers.PUT("/:id", handler.UpdateSupplier)
	suppliers.DELETE("/:id", handler.DeleteSupplier)

	orders := api.Group("/orders")
	orders.GET("", handler.ListOrders)
	orders.GET("/:id", handler.GetOrder)
	orders.POST("", handler.CreateOrder, manage)
	orders.PUT("/:id/status", handler.UpdateOrderStatus, manage)
	orders.POST("/:id/cancel", handler.CancelOrder, manage)
	orders.DELETE("/:id", handler.DeleteOrder, manage)

	stocks := api.Group("/stocks")
	stocks.GET("/expiring", handler.ListExpiringStocks)
	stocks.POST("", handler.CreateStock, manage)
	stocks.PUT("/:id", handler.UpdateStock, manage)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedRoles ensures the built-in roles exist
func seedRoles() error {
	db := database.GetDB()
	for _, name := range []string{model.RoleAdmin, model.RolePharmacist, model.RoleUser} {
		var role model.Role
		if err := db.Where(model.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// requestLogger logs every request after it completes
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	}
}
