package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/pkg/log"
)

// Consumer handles Kafka message consumption
type Consumer struct {
	Config  *cfg.Config
	Logger  log.Logger
	reader  *kafka.Reader
	handler func([]byte) error
}

// NewConsumer creates and returns a new Kafka Consumer
func NewConsumer(config *cfg.Config, logger log.Logger, topic, groupID string) *Consumer {
	if len(config.Kafka.Brokers) == 0 {
		panic("no kafka brokers configured")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Kafka.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		StartOffset:    kafka.FirstOffset,
		RetentionTime:  7 * 24 * time.Hour,
		CommitInterval: time.Second,
	})

	return &Consumer{
		Config: config,
		Logger: logger,
		reader: reader,
	}
}

// RegisterHandler registers the handler invoked for every consumed message
func (c *Consumer) RegisterHandler(handler func([]byte) error) {
	c.handler = handler
}

// Start begins consuming messages from the Kafka topic
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info(ctx, "Starting Kafka consumer for topic: %s", c.reader.Config().Topic)

	for {
		select {
		case <-ctx.Done():
			return c.reader.Close()
		default:
			message, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				c.Logger.Error(ctx, "Failed to read message from kafka: %v", err)
				continue
			}

			if c.handler == nil {
				continue
			}

			if err := c.handler(message.Value); err != nil {
				c.Logger.Error(ctx, "Failed to handle message with key %s: %v", string(message.Key), err)
			}
		}
	}
}

// Close closes the Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
