package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/ims/backend/internal/application/catalog"
	identityapp "github.com/ims/backend/internal/application/identity"
	inventoryapp "github.com/ims/backend/internal/application/inventory"
	partnerapp "github.com/ims/backend/internal/application/partner"
	procurementapp "github.com/ims/backend/internal/application/procurement"
	reportapp "github.com/ims/backend/internal/application/report"
	warehouseapp "github.com/ims/backend/internal/application/warehouse"
	"github.com/ims/backend/internal/infrastructure/auth"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/infrastructure/event"
	"github.com/ims/backend/internal/infrastructure/logger"
	"github.com/ims/backend/internal/infrastructure/persistence"
	"github.com/ims/backend/internal/infrastructure/telemetry"
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/middleware"
	"github.com/ims/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

//	@title			Inventory Backend API
//	@version		1.0
//	@description	REST API for the inventory management dashboard

//	@contact.name	API Support
//	@contact.url	https://github.com/ims/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing (if enabled)
	var tracerProvider *telemetry.TracerProvider
	if cfg.Telemetry.Enabled {
		tracerProvider, err = telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		log.Info("Tracing enabled",
			zap.String("endpoint", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	stockRepo := persistence.NewGormStockRecordRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Token blacklist backed by Redis, with in-memory fallback for
	// single-instance deployments without Redis
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo, productRepo, orderRepo)
	warehouseService := warehouseapp.NewWarehouseService(warehouseRepo, locationRepo, stockRepo)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, ledgerRepo, productRepo, warehouseRepo, locationRepo)
	orderService := procurementapp.NewPurchaseOrderService(orderRepo, supplierRepo, productRepo, warehouseRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	reportService := reportapp.NewReportService(reportRepo)

	// Initialize event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Purchase order receiving -> stock increase
	receivedOrderHandler := inventoryapp.NewReceivedOrderHandler(inventoryService, log)
	eventBus.Subscribe(receivedOrderHandler)
	log.Info("Event handlers registered",
		zap.Strings("received_order_events", receivedOrderHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	orderHandler := handler.NewPurchaseOrderHandler(orderService)
	reportHandler := handler.NewReportHandler(reportService)

	systemHandler := handler.NewSystemHandler()
	systemHandler.AddHealthChecker("database", func(ctx context.Context) error {
		return db.Ping()
	})
	if redisBlacklist != nil {
		systemHandler.AddHealthChecker("redis", redisBlacklist.Ping)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation errors by json field name
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, tracing, rate limits
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Stricter rate limit on authentication endpoints to slow down
	// credential stuffing
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authLimit := middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return "auth:" + c.ClientIP()
		})
		r.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				authLimit(c)
				return
			}
			c.Next()
		})
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// JWT authentication on all API routes except public endpoints
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	r.Register(authHandler).
		Register(userHandler).
		Register(productHandler).
		Register(categoryHandler).
		Register(supplierHandler).
		Register(warehouseHandler).
		Register(inventoryHandler).
		Register(orderHandler).
		Register(reportHandler).
		Register(systemHandler)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level to GORM's logger levels.
// SQL statement logging only kicks in at debug level.
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
