// The consumer replays snapshot sync events into a store backend. It lets a
// second backend (typically mongo) follow the primary one without scraping
// the source twice.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/pkg/kafka"
	"github.com/thep200/trending-crawler/pkg/log"
)

func main() {
	backend := flag.String("backend", "", "Store backend to mirror snapshots into (file|mongo)")
	flag.Parse()

	if *backend == "" {
		fmt.Println("Please specify a store backend: -backend=[file|mongo]")
		os.Exit(1)
	}

	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := log.NewCslLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.FactoryStore(*backend, logger, config)
	if err != nil {
		logger.Error(ctx, "Failed to create store: %v", err)
		os.Exit(1)
	}

	consumer := kafka.NewConsumer(config, logger, config.Kafka.Topic, "snapshot-mirror-group")
	consumer.RegisterHandler(func(data []byte) error {
		var message model.SnapshotMessage
		if err := json.Unmarshal(data, &message); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot message: %w", err)
		}

		if err := st.Upsert(ctx, message.Snapshot()); err != nil {
			return fmt.Errorf("failed to mirror snapshot: %w", err)
		}

		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Snapshot consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Snapshot consumer started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}
