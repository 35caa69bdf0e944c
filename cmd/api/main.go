package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaidashi/dessert-order-tracker/internal/api"
	"github.com/vaidashi/dessert-order-tracker/internal/app"
	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.NewLogger(cfg.LogLevel, cfg.Env)
	defer l.Sync()

	l.Info("Starting API server...")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.New(startCtx, cfg, l)
	cancelStart()

	if err != nil {
		l.Error("Failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	server := api.NewServer(cfg, l, a)

	// Start the server in a goroutine
	go func() {
		l.Info("Server is starting", "address", cfg.Address())

		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			l.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown via interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Error("Server forced to shutdown", "error", err)
	} else {
		l.Info("Server exiting")
	}
}
