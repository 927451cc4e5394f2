// Package api exposes a programmatic facade over the sync pipeline for
// embedding callers such as the scheduler.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/internal/scraper"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/internal/syncer"
	"github.com/thep200/trending-crawler/pkg/kafka"
	"github.com/thep200/trending-crawler/pkg/log"
)

// SyncStats holds statistics about the most recent sync run
type SyncStats struct {
	IsRunning bool      `json:"isRunning"`
	StartTime time.Time `json:"startTime"`
	Duration  string    `json:"duration"`
	Languages int       `json:"languages"`
	LastError string    `json:"lastError"`
}

// TrendingAPI wires config, store and syncer together and guards against
// overlapping sync runs
type TrendingAPI struct {
	ctx         context.Context
	config      *cfg.Config
	logger      log.Logger
	store       store.Store
	syncer      *syncer.Syncer
	syncing     bool
	syncStatsMu sync.RWMutex
	syncStats   *SyncStats
}

// NewTrendingAPI creates a new instance of TrendingAPI
func NewTrendingAPI() *TrendingAPI {
	return &TrendingAPI{
		syncStats: &SyncStats{},
	}
}

// Initialize sets up every component the sync pipeline needs
func (a *TrendingAPI) Initialize(ctx context.Context) error {
	a.ctx = ctx

	var err error

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	a.config, err = loader.Load()
	if err != nil {
		a.logger, _ = log.NewCslLogger()
		a.logger.Error(a.ctx, "Failed to load configuration: %v", err)
		return err
	}

	// Set up logger
	a.logger, err = log.NewCslLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	// Set up store backend
	a.store, err = store.FactoryStore(a.config.Store.Backend, a.logger, a.config)
	if err != nil {
		a.logger.Error(a.ctx, "Failed to create store: %v", err)
		return fmt.Errorf("failed to create store: %w", err)
	}

	// Set up scraper
	fetcher, err := scraper.NewScraper(a.logger, a.config)
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}

	// Optional snapshot event publishing
	var producer syncer.Publisher
	if a.config.Kafka.Enabled {
		producer = kafka.NewProducer(a.config, a.logger, a.config.Kafka.Topic)
	}

	a.syncer, err = syncer.NewSyncer(a.logger, a.config, fetcher, a.store, producer)
	if err != nil {
		return fmt.Errorf("failed to create syncer: %w", err)
	}

	return nil
}

// StartSync runs one configured sync batch in the background
func (a *TrendingAPI) StartSync() (string, error) {
	a.syncStatsMu.RLock()
	isSyncing := a.syncing
	a.syncStatsMu.RUnlock()

	if isSyncing {
		return "Sync is already in progress", nil
	}

	languages := a.syncer.ResolveLanguages("all")
	listingType, ok := model.ParseListingType(a.config.Trending.Type)
	if !ok {
		listingType = model.TypeRepositories
	}
	since, ok := model.ParseSince(a.config.Trending.Since)
	if !ok {
		since = model.SinceDaily
	}

	a.syncStatsMu.Lock()
	a.syncing = true
	a.syncStats = &SyncStats{
		IsRunning: true,
		StartTime: time.Now(),
		Languages: len(languages),
	}
	a.syncStatsMu.Unlock()

	go func() {
		a.syncer.SyncAll(a.ctx, languages, listingType, since, a.config.Trending.SpokenLanguage)

		a.syncStatsMu.Lock()
		a.syncing = false
		a.syncStats.IsRunning = false
		a.syncStats.Duration = time.Since(a.syncStats.StartTime).String()
		a.syncStatsMu.Unlock()
	}()

	return fmt.Sprintf("Started sync for %d languages", len(languages)), nil
}

// GetSyncStats returns statistics about the current or last sync run
func (a *TrendingAPI) GetSyncStats() (*SyncStats, error) {
	a.syncStatsMu.RLock()
	defer a.syncStatsMu.RUnlock()

	if a.syncStats == nil {
		return &SyncStats{}, nil
	}

	stats := *a.syncStats
	if stats.IsRunning {
		stats.Duration = time.Since(stats.StartTime).String()
	}

	return &stats, nil
}

// Store exposes the configured snapshot store for read-side callers
func (a *TrendingAPI) Store() store.Store {
	return a.store
}
