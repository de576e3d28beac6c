// Package main implements the entry point for the Arcana API server: a
// content-management backend for a tarot and horoscope product with a
// multi-provider LLM proxy for JSON generation.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/arcanalabs/arcana-api/internal/config"
	"github.com/arcanalabs/arcana-api/internal/platform/logger"
	"github.com/arcanalabs/arcana-api/internal/redact"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("arcana-api: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_provider", cfg.AI.DefaultProvider)

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server stopped with error", "error", redact.Error(err))
		return err
	}
	return nil
}
