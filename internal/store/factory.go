package store

import (
	"fmt"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/pkg/log"
	"github.com/thep200/trending-crawler/pkg/mongodb"
)

// FactoryStore selects the snapshot backend by name. The choice is made once
// at process start; everything above the Store interface is backend-agnostic.
func FactoryStore(backend string, logger log.Logger, config *cfg.Config) (Store, error) {
	switch backend {
	case "file":
		return NewFileStore(logger, config)
	case "mongo":
		mongo, err := mongodb.NewMongo(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create mongo connection: %w", err)
		}
		return NewMongoStore(logger, config, mongo)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
