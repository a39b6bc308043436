package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// CityConfig describes one crawl target. StateCode and Country validate the
// parsed public address; NormalizedState replaces the abbreviation on output.
type CityConfig struct {
	Name            string `yaml:"name"`
	StateCode       string `yaml:"state_code"`
	Country         string `yaml:"country"`
	NormalizedState string `yaml:"normalized_state"`
}

// Config holds all runtime configuration for the crawler.
type Config struct {
	Cities     []CityConfig
	MaxPerCity int // acceptance cap per city
	APIKey     string
	SearchBase string
	DetailBase string

	Workers          int // concurrent city streams
	DetailConcurrent int // concurrent rating fetches per city
	Headless         bool
	UserAgent        string

	// Timing
	DetailTimeout time.Duration
	GlobalTimeout time.Duration

	// Sinks
	CSVFile   string
	JSONLFile string

	// PostgreSQL
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// MongoDB
	MongoURI string
	MongoDB  string
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Cities: []CityConfig{
			{Name: "Springdale", StateCode: "AR", Country: "United States", NormalizedState: "Arkansas"},
			{Name: "Fayetteville", StateCode: "AR", Country: "United States", NormalizedState: "Arkansas"},
			{Name: "Rogers", StateCode: "AR", Country: "United States", NormalizedState: "Arkansas"},
		},
		MaxPerCity: getEnvInt("MAX_PER_CITY", 300),
		APIKey:     getEnv("AIRBNB_API_KEY", "d306zoyjsyarp7ifhu67rjxn52tv0t20"),
		SearchBase: getEnv("SEARCH_BASE_URL", "https://www.airbnb.com/api/v2/explore_tabs"),
		DetailBase: getEnv("DETAIL_BASE_URL", "https://www.airbnb.com/rooms"),

		Workers:          getEnvInt("WORKERS", 3),
		DetailConcurrent: getEnvInt("DETAIL_CONCURRENT", 4),
		Headless:         true,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		DetailTimeout: 35 * time.Second,
		GlobalTimeout: 90 * time.Minute,

		CSVFile:   getEnv("CSV_FILE", "listing.csv"),
		JSONLFile: getEnv("JSONL_FILE", "listing.json"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5433),
		DBUser:     getEnv("DB_USER", "airbnb"),
		DBPassword: getEnv("DB_PASSWORD", "airbnb"),
		DBName:     getEnv("DB_NAME", "airbnb_scraper"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB_NAME", "airbnb_scraper"),
	}
}

// fileOverrides mirrors the optional YAML override file.
type fileOverrides struct {
	Cities     []CityConfig `yaml:"cities"`
	MaxPerCity int          `yaml:"max_per_city"`
	Workers    int          `yaml:"workers"`
}

// Load returns Default overlaid with values from the YAML file at path, if
// the file exists. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	var over fileOverrides
	if err := yaml.NewDecoder(f).Decode(&over); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if len(over.Cities) > 0 {
		cfg.Cities = over.Cities
	}
	if over.MaxPerCity > 0 {
		cfg.MaxPerCity = over.MaxPerCity
	}
	if over.Workers > 0 {
		cfg.Workers = over.Workers
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
