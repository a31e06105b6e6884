package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the service reads from the environment.
type Config struct {
	AppEnv string
	Port   string

	UpstreamBaseURL string
	UpstreamAPIKey  string
	UpstreamTimeout time.Duration

	CacheTTL         time.Duration
	NegativeCacheTTL time.Duration
	CacheSweep       time.Duration

	GeneralWindow   time.Duration
	PerTargetWindow time.Duration

	AirportDataPath string
}

// Load reads the environment, applying defaults for anything unset.
func Load() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		UpstreamBaseURL: getEnv("FLIGHT_API_BASE_URL", "https://api.flightdata.example/v1"),
		UpstreamAPIKey:  os.Getenv("FLIGHT_API_KEY"),
		UpstreamTimeout: getDurationMs("UPSTREAM_TIMEOUT_MS", 8000),

		CacheTTL:         getDurationMs("CACHE_TTL_MS", 60000),
		NegativeCacheTTL: getDurationMs("NEGATIVE_CACHE_TTL_MS", 120000),
		CacheSweep:       getDurationMs("CACHE_SWEEP_MS", 600000),

		GeneralWindow:   getDurationMs("RATE_GENERAL_WINDOW_MS", 10000),
		PerTargetWindow: getDurationMs("RATE_TARGET_WINDOW_MS", 30000),

		AirportDataPath: os.Getenv("AIRPORT_DATA_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationMs(key string, fallbackMs int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallbackMs) * time.Millisecond
}
