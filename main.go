package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/app"
	"catalog/internal/config"
	"catalog/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, "catalog")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	a, err := app.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := a.StartEventLog(); err != nil {
		zl.Warn("failed to start product event consumer", zap.Error(err))
	}

	go func() {
		zl.Info("starting server", zap.String("addr", cfg.AppPort))
		if err := a.Fiber.Listen(cfg.AppPort); err != nil {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := a.Close(); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
}
