package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/stockroom/backoffice/infrastructure/adapter/postgres"
	"github.com/stockroom/backoffice/infrastructure/config"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

func main() {
	mode := flag.String("mode", postgres.MigrationUp, "migration mode: up or down")
	dir := flag.String("dir", "migrations", "directory holding the migration files")
	flag.Parse()

	ctx := context.Background()

	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       "info",
		ServiceName: "backoffice-migrate",
	})

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	migrator := postgres.NewMigrator(db, os.DirFS(*dir), structuredLogger)
	if err := migrator.Run(ctx, strings.ToLower(*mode)); err != nil {
		structuredLogger.Error(ctx, "Migration failed", err, map[string]interface{}{"mode": *mode})
		os.Exit(1)
	}
	structuredLogger.Info(ctx, "Migration completed successfully", map[string]interface{}{"mode": *mode})
}
