package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/stockroom/backoffice/application/usecase/audit"
	"github.com/stockroom/backoffice/application/usecase/catalog"
	"github.com/stockroom/backoffice/infrastructure/adapter/postgres"
	"github.com/stockroom/backoffice/infrastructure/config"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

func main() {
	ctx := context.Background()

	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       "info",
		ServiceName: "backoffice-seed",
	})

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	categoryRepo := postgres.NewCategoryRepository(db)
	txManager := postgres.NewTxManager(db)
	recorder := audit.NewRecorder(postgres.NewAuditRepository(db), structuredLogger)

	s := &seeder{
		existing:    categoryRepo,
		categories:  catalog.NewCategoryUseCase(categoryRepo, txManager, recorder),
		products:    catalog.NewProductUseCase(postgres.NewProductRepository(db), txManager, recorder),
		inventories: catalog.NewInventoryUseCase(postgres.NewInventoryRepository(db), txManager, recorder),
		logger:      structuredLogger,
	}
	if err := s.Run(ctx); err != nil {
		structuredLogger.Error(ctx, "Seeding failed", err, nil)
		os.Exit(1)
	}
}
