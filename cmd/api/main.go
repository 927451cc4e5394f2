package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/api"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/pkg/log"
)

func main() {
	ctx := context.Background()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	logger, _ := log.NewCslLogger()
	if err != nil {
		logger.Error(ctx, "Failed to load config: %v", err)
		os.Exit(1)
	}

	st, err := store.FactoryStore(config.Store.Backend, logger, config)
	if err != nil {
		logger.Error(ctx, "Failed to create store: %v", err)
		os.Exit(1)
	}

	server, err := api.NewServer(logger, config, st, config.Api.Port)
	if err != nil {
		logger.Error(ctx, "Failed to create server: %v", err)
		os.Exit(1)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Error(ctx, "Server stopped with error: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info(ctx, "Received shutdown signal, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Failed to stop server cleanly: %v", err)
	}
}
