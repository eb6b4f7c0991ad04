package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pitchprice/storage"
)

type Config struct {
	ListenAddr      string
	VenueConfigPath string
	DataDir         string
	DataURL         string
	DatabaseURL     string
	DBPath          string
	EventID         string
	LogPath         string
	DevMode         bool
	StaleAfter      time.Duration
	FetchTimeout    time.Duration
	Refresh         RefreshConfig
	S3              storage.S3Config
	Events          map[string]*EventConfig
}

type RefreshConfig struct {
	Interval time.Duration
	Cron     string
}

// EventConfig is per-event tuning loaded from config/events/*.yaml
type EventConfig struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	ControlCity     string `yaml:"control_city"`
	Currency        string `yaml:"currency"`
	StaleAfterHours int    `yaml:"stale_after_hours"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		VenueConfigPath: getEnv("VENUE_CONFIG_PATH", "config/hotels.json"),
		DataDir:         getEnv("DATA_DIR", "data/scrapes"),
		DataURL:         os.Getenv("DATA_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBPath:          getEnv("DB_PATH", "dashboard.db"),
		EventID:         getEnv("EVENT_ID", "fifa_2026"),
		LogPath:         getEnv("LOG_PATH", "dashboard.log"),
		DevMode:         os.Getenv("DEV_MODE") == "true",
		StaleAfter:      time.Duration(getEnvInt("STALE_AFTER_HOURS", 168)) * time.Hour,
		FetchTimeout:    time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 60)) * time.Second,
		Refresh: RefreshConfig{
			Cron: os.Getenv("REFRESH_CRON"),
		},
		S3: storage.S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Prefix:          os.Getenv("S3_PREFIX"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		Events: make(map[string]*EventConfig),
	}

	if interval := os.Getenv("REFRESH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Refresh.Interval = d
		}
	}

	if err := cfg.loadEventConfigs(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ActiveEvent returns the tuning for the configured event, or defaults
// when no YAML file exists for it.
func (c *Config) ActiveEvent() *EventConfig {
	if ev, ok := c.Events[c.EventID]; ok {
		return ev
	}
	return &EventConfig{ID: c.EventID, Currency: "CAD"}
}

func (c *Config) loadEventConfigs() error {
	configDir := "config/events"
	entries, err := os.ReadDir(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(configDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var event EventConfig
		if err := yaml.Unmarshal(data, &event); err != nil {
			return err
		}

		if event.StaleAfterHours > 0 && event.ID == c.EventID {
			c.StaleAfter = time.Duration(event.StaleAfterHours) * time.Hour
		}
		c.Events[event.ID] = &event
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
