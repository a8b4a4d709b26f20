package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/logging"
	"github.com/pageza/recipe-service/backend/internal/server"
	"github.com/pageza/recipe-service/backend/internal/store"
)

// @title Recipe Service API
// @version 1.0
// @description Stores recipes and the ingredient amounts they are made of.
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// The store handle lives for the whole process and is closed by srv.Shutdown
	recipes, err := store.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to open recipe store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	srv := server.New(cfg, recipes, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.Stringer("signal", sig))
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
