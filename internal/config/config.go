// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for the catalog database (always absolute)
	Port          int
	DevMode       bool
	LogLevel      string
	IndexSymbols  []string // Tracked market indices for the insights sidebar
	MoverSymbols  []string // Watchlist scanned for top gainers/losers
	NewsFeedURL   string   // RSS feed for the market news panel
	NewsLimit     int      // Number of feed entries to surface
	QuoteLookback int      // Lookback window (days) for recent close fetches
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:      absDataDir,
		Port:         getEnvAsInt("GO_PORT", 8001),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		IndexSymbols: getEnvAsList("INDEX_SYMBOLS", []string{"^BSESN", "^NSEI"}),
		MoverSymbols: getEnvAsList("MOVER_SYMBOLS", []string{
			"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "ICICIBANK.NS",
			"HINDUNILVR.NS", "KOTAKBANK.NS", "LT.NS", "SBIN.NS", "BAJFINANCE.NS",
		}),
		NewsFeedURL:   getEnv("NEWS_FEED_URL", "https://finance.yahoo.com/news/rssindex"),
		NewsLimit:     getEnvAsInt("NEWS_LIMIT", 5),
		QuoteLookback: getEnvAsInt("QUOTE_LOOKBACK_DAYS", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.QuoteLookback < 2 {
		return fmt.Errorf("quote lookback must cover at least two sessions, got %d", c.QuoteLookback)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
