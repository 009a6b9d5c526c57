package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/usecase/audit"
	"github.com/stockroom/backoffice/application/usecase/auth"
	"github.com/stockroom/backoffice/application/usecase/catalog"
	"github.com/stockroom/backoffice/application/usecase/dashboard"
	"github.com/stockroom/backoffice/infrastructure/adapter/postgres"
	"github.com/stockroom/backoffice/infrastructure/config"
	apihttp "github.com/stockroom/backoffice/infrastructure/http"
	"github.com/stockroom/backoffice/infrastructure/http/handler"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/service/jwt"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
	"github.com/stockroom/backoffice/infrastructure/service/password"
	"github.com/stockroom/backoffice/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "backoffice-api",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":      cfg.Environment,
		"timezone": cfg.Timezone,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to open database", err, nil)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// fall back to an unthrottled login rather than refusing to start
	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service", err, map[string]interface{}{
			"enabled": cfg.RateLimitEnabled,
		})
		rateLimitService = ratelimit.NewNoopRateLimitService()
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	txManager := postgres.NewTxManager(db)

	// Services
	tokenService, err := jwt.NewJWTService(cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize JWT service", err, nil)
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewHasher(cfg.BcryptCost)

	// Use cases
	recorder := audit.NewRecorder(auditRepo, structuredLogger)
	var (
		authUseCase      inbound.AuthUseCase       = auth.NewAuthUseCase(userRepo, tokenService, passwordService, structuredLogger, cfg.AccessTokenTTL)
		auditQuery       inbound.AuditQueryUseCase = audit.NewQueryUseCase(auditRepo)
		dashboardUseCase inbound.DashboardUseCase  = dashboard.NewUseCase(productRepo, categoryRepo, inventoryRepo, auditRepo, structuredLogger, cfg.Location)
		categoryUseCase  inbound.CategoryUseCase   = catalog.NewCategoryUseCase(categoryRepo, txManager, recorder)
		productUseCase   inbound.ProductUseCase    = catalog.NewProductUseCase(productRepo, txManager, recorder)
		inventoryUseCase inbound.InventoryUseCase  = catalog.NewInventoryUseCase(inventoryRepo, txManager, recorder)
	)

	routerConfig := apihttp.RouterConfig{
		Handlers: apihttp.Handlers{
			Auth:      handler.NewAuthHandler(authUseCase),
			Dashboard: handler.NewDashboardHandler(dashboardUseCase),
			Audit:     handler.NewAuditHandler(auditQuery),
			Category:  handler.NewCategoryHandler(categoryUseCase),
			Product:   handler.NewProductHandler(productUseCase),
			Inventory: handler.NewInventoryHandler(inventoryUseCase),
		},
		Auth: middleware.NewAuthMiddleware(tokenService, structuredLogger),
		RateLimit: middleware.NewRateLimitMiddleware(rateLimitService, middleware.RateLimitConfig{
			Attempts:      cfg.RateLimitLoginAttempts,
			Window:        cfg.RateLimitLoginWindow,
			BlockDuration: cfg.RateLimitBlockDuration,
		}, structuredLogger),
		Database:    db,
		Logger:      structuredLogger,
		LogRequests: cfg.LogEnableRequestLog,
	}
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		routerConfig.CORS = middleware.CORSMiddleware(middleware.CORSConfig{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: cfg.CORSAllowCredentials,
		})
	}

	server := apihttp.NewServer(apihttp.ServerConfig{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, apihttp.NewRouter(routerConfig), structuredLogger)

	go func() {
		if err := server.Start(); err != nil {
			structuredLogger.Error(ctx, "Server failed to start", err, map[string]interface{}{
				"host": cfg.ServerHost,
				"port": cfg.ServerPort,
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
