package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "trending-crawler",
			Version: "0.0.1",
		},

		// Trending
		Trending: Trending{
			BaseUrl:        "https://github.com/trending",
			UserAgent:      "Mozilla/5.0 (compatible; TrendingFetcher/1.0)",
			Languages:      []string{"typescript", "go", "rust", "python"},
			Type:           "repositories",
			Since:          "daily",
			SpokenLanguage: "",
			Thresholds: map[string]int{
				"go":         50,
				"rust":       50,
				"python":     80,
				"typescript": 80,
			},
			PacingMs:        500,
			FetchTimeoutSec: 15,
		},

		// Store
		Store: Store{
			Backend: "file",
			DataDir: ".",
		},

		// Mongo
		Mongo: Mongo{
			Uri:               "mongodb://127.0.0.1:27017",
			Database:          "trending_crawler",
			Collection:        "trendingSnapshots",
			ConnectTimeoutSec: 10,
		},

		// Kafka
		Kafka: Kafka{
			Enabled: false,
			Brokers: []string{"127.0.0.1:9092"},
			Topic:   "trending.snapshots",
		},

		// Api
		Api: Api{
			Port: 8080,
		},

		// Scheduler
		Scheduler: Scheduler{
			Cron:     "0 2 * * *",
			Timezone: "Etc/UTC",
		},
	}, nil
}
