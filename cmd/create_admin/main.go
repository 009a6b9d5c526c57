package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/stockroom/backoffice/domain/entity"
	"github.com/stockroom/backoffice/infrastructure/adapter/postgres"
	"github.com/stockroom/backoffice/infrastructure/config"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
	"github.com/stockroom/backoffice/infrastructure/service/password"
)

func main() {
	email := flag.String("email", "admin@example.com", "login email")
	userPassword := flag.String("password", "password", "login password, at least 8 characters")
	name := flag.String("name", "Administrator", "display name")
	role := flag.String("role", entity.RoleAdmin, "admin, manager or editor")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "backoffice-create-admin",
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	p := &provisioner{
		users:     postgres.NewUserRepository(db),
		passwords: password.NewHasher(cfg.BcryptCost),
	}
	user, created, err := p.Provision(ctx, *name, *email, *userPassword, *role)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to provision user", err, map[string]interface{}{"email": *email})
		os.Exit(1)
	}

	structuredLogger.Info(ctx, "User provisioned", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"created": created,
	})
}
