// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-seats/cmd"
	"library-seats/internal/clock"
	"library-seats/internal/data/repository"
	"library-seats/internal/wire"
	"library-seats/pkg/database"
	"library-seats/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the key-value store
	kv, err := database.OpenStore(ctx, config)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer kv.Close()

	logger.Info("Store opened successfully")

	// Initialize all repositories
	repos := repository.NewRepository(kv, logger)

	// Wire all dependencies
	app := wire.Wiring(kv, repos, config, clock.NewSystem(), logger)

	if err := app.Service.Auth.EnsureSeedUser(ctx); err != nil {
		logger.Fatal("Failed to seed user", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
