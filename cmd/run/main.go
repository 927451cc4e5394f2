package main

import (
	"context"
	"flag"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/internal/scraper"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/internal/syncer"
	"github.com/thep200/trending-crawler/pkg/kafka"
	"github.com/thep200/trending-crawler/pkg/log"
)

func main() {
	listingType := flag.String("type", "repositories", "Listing kind to scrape (repositories|developers)")
	since := flag.String("since", "daily", "Recency window (daily|weekly|monthly)")
	lang := flag.String("lang", "all", "Catalog language or \"all\"")
	spoken := flag.String("spoken", "", "Spoken language code filter")
	flag.Parse()

	ctx := context.Background()
	// loader, _ := cfg.NewMockLoader()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	logger, _ := log.NewCslLogger()
	if err != nil {
		logger.Error(ctx, "Failed to load config: %v", err)
		return
	}

	st, err := store.FactoryStore(config.Store.Backend, logger, config)
	if err != nil {
		logger.Error(ctx, "Failed to create store: %v", err)
		return
	}

	fetcher, _ := scraper.NewScraper(logger, config)

	var producer syncer.Publisher
	if config.Kafka.Enabled {
		kafkaProducer := kafka.NewProducer(config, logger, config.Kafka.Topic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	sync, err := syncer.NewSyncer(logger, config, fetcher, st, producer)
	if err != nil {
		logger.Error(ctx, "Failed to create syncer: %v", err)
		return
	}

	t, ok := model.ParseListingType(*listingType)
	if !ok {
		t = model.TypeRepositories
	}
	s, ok := model.ParseSince(*since)
	if !ok {
		s = model.SinceDaily
	}

	logger.Info(ctx, "Starting trending sync")
	sync.SyncAll(ctx, sync.ResolveLanguages(*lang), t, s, *spoken)
}
