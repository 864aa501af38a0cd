package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"pausepad/internal/config"
	"pausepad/internal/db"
	"pausepad/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	applied, err := db.RunMigrations(context.Background(), database, db.MigrationSource(cfg.MigrationsDir))
	if err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	logger.Info("migrations applied successfully", zap.String("db_path", cfg.DBPath), zap.Strings("applied", applied))
}
