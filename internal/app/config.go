package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTimezone buckets entries by calendar day unless overridden.
const DefaultTimezone = "America/Los_Angeles"

type Config struct {
	DataDir        string
	CacheDBPath    string
	Timezone       string
	USDAAPIKey     string
	LocalFoodsPath string
	DashboardToken string
	Port           int
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one is present in the working directory.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DataDir:        strings.TrimSpace(os.Getenv("MACRO_TRACKER_DATA_DIR")),
		CacheDBPath:    strings.TrimSpace(os.Getenv("MACRO_TRACKER_CACHE_DB")),
		Timezone:       strings.TrimSpace(os.Getenv("MACRO_TRACKER_TZ")),
		USDAAPIKey:     strings.TrimSpace(os.Getenv("USDA_API_KEY")),
		LocalFoodsPath: strings.TrimSpace(os.Getenv("MACRO_TRACKER_LOCAL_FOODS")),
		DashboardToken: strings.TrimSpace(os.Getenv("MACRO_TRACKER_TOKEN")),
		Port:           8787,
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	if cfg.CacheDBPath == "" {
		path, err := DefaultCacheDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.CacheDBPath = path
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if port := strings.TrimSpace(os.Getenv("MACRO_TRACKER_PORT")); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return Config{}, fmt.Errorf("invalid MACRO_TRACKER_PORT %q", port)
		}
		cfg.Port = p
	}
	return cfg, nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
