package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/thep200/trending-crawler/api"
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/pkg/log"
)

func main() {
	ctx := context.Background()
	logger, _ := log.NewCslLogger()

	trendingApi := api.NewTrendingAPI()
	if err := trendingApi.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}

	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		logger.Error(ctx, "Failed to load config: %v", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(config.Scheduler.Timezone)
	if err != nil {
		logger.Warn(ctx, "Unknown timezone %s, falling back to UTC", config.Scheduler.Timezone)
		location = time.UTC
	}

	scheduler := cron.New(cron.WithLocation(location))
	_, err = scheduler.AddFunc(config.Scheduler.Cron, func() {
		message, err := trendingApi.StartSync()
		if err != nil {
			logger.Error(ctx, "Scheduled sync failed to start: %v", err)
			return
		}
		logger.Info(ctx, "%s", message)
	})
	if err != nil {
		logger.Error(ctx, "Invalid schedule expression %q: %v", config.Scheduler.Cron, err)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info(ctx, "Scheduler started with expression %q (%s)", config.Scheduler.Cron, location)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info(ctx, "Received shutdown signal, stopping scheduler...")
	<-scheduler.Stop().Done()
}
