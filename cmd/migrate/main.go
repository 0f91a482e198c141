package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"timeless-server/internal/config"
	"timeless-server/internal/database"
	"timeless-server/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	command := flag.String("command", "up", "migration command: up, down, version, force")
	forceVersion := flag.Int("version", -1, "schema version for the force command")
	flag.Parse()

	cfg, err := config.Read(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Service: "timeless-migrate", Level: cfg.Log.Level, Encoding: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.SetupPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool, log)

	switch *command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "force":
		if *forceVersion < 0 {
			log.Fatal("The force command requires -version")
		}
		err = migrator.Force(*forceVersion)
	case "version":
		version, dirty, versionErr := migrator.Version()
		if versionErr == nil {
			log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		err = versionErr
	default:
		log.Fatal("Unknown migration command", zap.String("command", *command))
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", *command), zap.Error(err))
	}
}
