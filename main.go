// Package main provides the application entrypoint.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/gamijournal/emocal/api"
	"github.com/gamijournal/emocal/client"
	"github.com/gamijournal/emocal/config"
	"github.com/gamijournal/emocal/db"
	"github.com/gamijournal/emocal/store"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	snapshots, err := store.NewSQLiteStore(cfg.DataDir, db.Migrate)
	if err != nil {
		logger.Fatal("Failed to initialize SQLite store", zap.Error(err))
	}
	defer snapshots.Close()

	upstream := client.New(cfg.UpstreamURL, cfg.UpstreamToken, logger)

	server := api.NewServer(snapshots, upstream, cfg, logger)

	if err := server.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
