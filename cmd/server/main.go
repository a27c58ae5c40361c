// Package main implements the entry point for the TaskDeck API server:
// authenticated task management backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up, down, status) and exit")
	flag.Parse()

	// Local development convenience; absent .env files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to set up database", "error", err)
		log.Fatalf("Failed to set up database: %v", err)
	}

	if *migrateCmd != "" {
		if err := postgres.Migrate(db, *migrateCmd); err != nil {
			appLogger.Error("migration failed", "command", *migrateCmd, "error", err)
			log.Fatalf("Migration failed: %v", err)
		}
		appLogger.Info("migration completed", "command", *migrateCmd)
		return
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("server error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}
