package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Trending struct {
		BaseUrl         string
		UserAgent       string
		Languages       []string
		Type            string
		Since           string
		SpokenLanguage  string
		Thresholds      map[string]int
		PacingMs        int
		FetchTimeoutSec int
	}

	Store struct {
		Backend string
		DataDir string
	}

	Mongo struct {
		Uri               string
		Database          string
		Collection        string
		ConnectTimeoutSec int
	}

	Kafka struct {
		Enabled bool
		Brokers []string
		Topic   string
	}

	Api struct {
		Port int
	}

	Scheduler struct {
		Cron     string
		Timezone string
	}
)

type Config struct {
	App       App
	Trending  Trending
	Store     Store
	Mongo     Mongo
	Kafka     Kafka
	Api       Api
	Scheduler Scheduler
}
