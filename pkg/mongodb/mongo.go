package mongodb

import (
	"context"
	"sync"
	"time"

	"github.com/thep200/trending-crawler/cfg"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	initErr error
)

type Mongo struct {
	Config *cfg.Config
	once   sync.Once
	client *mongo.Client
}

func NewMongo(config *cfg.Config) (*Mongo, error) {
	return &Mongo{
		Config: config,
	}, nil
}

func (m *Mongo) Client() (*mongo.Client, error) {
	m.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout())
		defer cancel()

		var client *mongo.Client
		client, initErr = mongo.Connect(ctx, options.Client().ApplyURI(m.Config.Mongo.Uri))
		if initErr != nil {
			return
		}

		m.client = client
	})
	return m.client, initErr
}

// Collection returns the snapshot collection configured for this deployment.
func (m *Mongo) Collection() (*mongo.Collection, error) {
	client, err := m.Client()
	if err != nil {
		return nil, err
	}
	return client.Database(m.Config.Mongo.Database).Collection(m.Config.Mongo.Collection), nil
}

func (m *Mongo) Ping() error {
	client, err := m.Client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout())
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close() error {
	if m.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout())
		defer cancel()
		return m.client.Disconnect(ctx)
	}
	return nil
}

func (m *Mongo) connectTimeout() time.Duration {
	sec := m.Config.Mongo.ConnectTimeoutSec
	if sec <= 0 {
		sec = 10
	}
	return time.Duration(sec) * time.Second
}
