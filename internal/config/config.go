// Package config owns process settings, the source descriptor list, and the
// static section taxonomy.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	SectionTargetMin = 3
	SectionTargetMax = 5
)

type Config struct {
	// Source inputs
	SourcesConfigPath string
	FeedsRegistryPath string

	// Output
	OutputDir string
	Timezone  string

	// Curation targets
	MinPerSection int
	MaxPerSection int
	MaxItemAge    time.Duration // items older than this are dropped pre-dedupe

	// Enrichment settings
	OpenAIAPIKey      string
	OpenAIModel       string
	GeminiAPIKey      string
	MaxEnrichRequests int // per run, across providers (0 = unlimited)

	// Scraper settings
	ScrapeMaxArticles int // cap of full-article upgrades per run

	// Seen store (cross-run suppression)
	DatabaseURL  string
	SeenFilePath string
	SeenTTLHours int

	// Telegram digest (optional)
	TelegramToken  string
	TelegramChatID string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath: "config/sources.yaml",
		FeedsRegistryPath: "config/feeds.md",
		OutputDir:         "site",
		Timezone:          "America/New_York",
		MinPerSection:     SectionTargetMin,
		MaxPerSection:     SectionTargetMax,
		MaxItemAge:        24 * time.Hour,
		OpenAIModel:       "gpt-4o-mini",
		MaxEnrichRequests: 12,
		ScrapeMaxArticles: 10,
		RequestTimeout:    30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
		SeenFilePath:      "featured_items.json",
		SeenTTLHours:      72,
	}

	// Load from environment
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.FeedsRegistryPath = getEnvOrDefault("FEEDS_REGISTRY_PATH", cfg.FeedsRegistryPath)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.Timezone = getEnvOrDefault("FEED_TIMEZONE", cfg.Timezone)
	cfg.SeenFilePath = getEnvOrDefault("SEEN_FILE_PATH", cfg.SeenFilePath)
	cfg.SeenTTLHours = getEnvIntOrDefault("SEEN_TTL_HOURS", cfg.SeenTTLHours)

	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAIModel = model
	}
	if v := os.Getenv("MAX_ENRICH_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.MaxEnrichRequests = val
		}
	}
	if v := os.Getenv("SCRAPE_MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ScrapeMaxArticles = val
		}
	}
	if v := os.Getenv("MAX_ITEM_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxItemAge = time.Duration(val) * time.Hour
		}
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SourcesConfigPath == "" {
		return fmt.Errorf("sources config path is required")
	}
	if c.MinPerSection < 0 || c.MaxPerSection < 1 {
		return fmt.Errorf("section targets must be positive")
	}
	if c.MinPerSection > c.MaxPerSection {
		return fmt.Errorf("min per section (%d) exceeds max (%d)", c.MinPerSection, c.MaxPerSection)
	}
	if c.TelegramToken != "" && c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}
