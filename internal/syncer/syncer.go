// Package syncer drives the scrape -> normalize -> store pipeline across one
// or more catalog languages.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/limiter"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/internal/normalizer"
	"github.com/thep200/trending-crawler/internal/scraper"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/pkg/log"
)

// Fetcher is the listing source. Satisfied by scraper.Scraper; tests swap in
// a fake so no network is touched.
type Fetcher interface {
	FetchTrending(ctx context.Context, listingType model.ListingType, opts scraper.FetchOptions) ([]model.TrendingRepo, error)
}

// Publisher announces completed snapshots. Satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

type Syncer struct {
	Logger   log.Logger
	Config   *cfg.Config
	Fetcher  Fetcher
	Store    store.Store
	Producer Publisher
	Pacer    *limiter.Pacer
}

// NewSyncer wires the pipeline. Producer may be nil when event publishing is
// disabled.
func NewSyncer(logger log.Logger, config *cfg.Config, fetcher Fetcher, st store.Store, producer Publisher) (*Syncer, error) {
	pacingMs := config.Trending.PacingMs
	if pacingMs <= 0 {
		pacingMs = 500
	}

	return &Syncer{
		Logger:   logger,
		Config:   config,
		Fetcher:  fetcher,
		Store:    st,
		Producer: producer,
		Pacer:    limiter.NewPacer(time.Duration(pacingMs) * time.Millisecond),
	}, nil
}

// ResolveLanguages expands the CLI language argument. "all" and the empty
// string mean the configured multi-language set.
func (s *Syncer) ResolveLanguages(lang string) []string {
	if lang == "" || lang == "all" {
		return s.Config.Trending.Languages
	}
	return []string{lang}
}

// SyncAll processes the languages strictly in sequence with a pacing pause
// between them. One language failing is logged and skipped; partial success
// is a normal outcome for the batch.
func (s *Syncer) SyncAll(ctx context.Context, languages []string, listingType model.ListingType, since model.Since, spoken string) {
	startTime := time.Now()
	synced := 0

	for i, language := range languages {
		if i > 0 {
			s.Pacer.Wait()
		}
		if err := s.syncLanguage(ctx, language, listingType, since, spoken); err != nil {
			s.Logger.Error(ctx, "Failed to sync %s: %v", language, err)
			continue
		}
		synced++
	}

	s.Logger.Info(ctx, "Sync finished: %d/%d languages in %v", synced, len(languages), time.Since(startTime).Round(time.Millisecond))
}

func (s *Syncer) syncLanguage(ctx context.Context, language string, listingType model.ListingType, since model.Since, spoken string) error {
	records, err := s.Fetcher.FetchTrending(ctx, listingType, scraper.FetchOptions{
		Language:           language,
		Since:              since,
		SpokenLanguageCode: spoken,
	})
	if err != nil {
		return fmt.Errorf("fetch failed for %s: %w", language, err)
	}

	threshold := normalizer.Threshold(s.Config, language)
	today := model.Today()
	items := normalizer.Normalize(records, threshold, today)

	snapshot := model.TrendingSnapshot{
		Language: language,
		Type:     listingType,
		Since:    since,
		Month:    model.MonthOfDay(today),
		Day:      today,
		Items:    items,
	}

	if err := s.Store.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("store upsert failed for %s: %w", language, err)
	}

	if s.Producer != nil {
		message := model.NewSnapshotMessage(snapshot, time.Now())
		if err := s.Producer.Publish(ctx, snapshot.Key(), message); err != nil {
			// The snapshot is already stored; a lost event is not worth
			// failing the language over
			s.Logger.Warn(ctx, "Failed to publish snapshot event for %s: %v", language, err)
		}
	}

	s.Logger.Info(ctx, "Stored %d repos for %s (%s, %s)", len(items), language, listingType, since)
	return nil
}
