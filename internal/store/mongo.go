package store

import (
	"context"
	"fmt"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/pkg/log"
	"github.com/thep200/trending-crawler/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps one document per snapshot key inside a single collection.
// Each upsert is an independent merge keyed by the composite id, so unlike
// the file backend it tolerates concurrent writers.
type MongoStore struct {
	Logger log.Logger
	Config *cfg.Config
	Mongo  *mongodb.Mongo
}

func NewMongoStore(logger log.Logger, config *cfg.Config, mongo *mongodb.Mongo) (*MongoStore, error) {
	return &MongoStore{
		Logger: logger,
		Config: config,
		Mongo:  mongo,
	}, nil
}

func (m *MongoStore) Upsert(ctx context.Context, snapshot model.TrendingSnapshot) error {
	coll, err := m.Mongo.Collection()
	if err != nil {
		return fmt.Errorf("failed to get snapshot collection: %w", err)
	}

	// Merge-write: unspecified fields on the document are preserved and the
	// server stamps the update time.
	update := bson.M{
		"$set":         snapshot,
		"$currentDate": bson.M{"updatedAt": true},
	}

	_, err = coll.UpdateOne(
		ctx,
		bson.M{"_id": snapshot.Key()},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", snapshot.Key(), err)
	}

	return nil
}

func (m *MongoStore) Read(ctx context.Context, query model.Query) ([]model.TrendingSnapshot, error) {
	coll, err := m.Mongo.Collection()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot collection: %w", err)
	}

	filter := bson.M{}
	if query.Language != "" {
		filter["language"] = query.Language
	}
	if query.Type != "" {
		filter["type"] = query.Type
	}
	if query.Since != "" {
		filter["since"] = query.Since
	}
	if query.Month != "" {
		filter["month"] = query.Month
	}
	if query.Day != "" {
		filter["day"] = query.Day
	}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := make([]model.TrendingSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	return snapshots, nil
}
