package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Fanvue API
	FanvueAPIBase    string
	FanvueAPIVersion string
	UploadTimeout    time.Duration // timeout for the binary transfer to the signed URL

	// OpenAI API (caption and content-plan generation)
	OpenAIAPIKey string
	OpenAIModel  string

	// Content plan exports
	ExportDir string

	// HTTP server
	ListenAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "data/fanpost.db"),
		FanvueAPIBase:    getEnv("FANVUE_API_BASE", "https://api.fanvue.com"),
		FanvueAPIVersion: getEnv("FANVUE_API_VERSION", "2025-06-26"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),
		ListenAddr:       getEnv("LISTEN_ADDR", ":7860"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	// Parse durations
	var err error
	cfg.UploadTimeout, err = time.ParseDuration(getEnv("UPLOAD_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.FanvueAPIBase == "" {
		return fmt.Errorf("FANVUE_API_BASE is required")
	}
	return nil
}

// ValidateForGeneration checks configuration needed for AI caption and
// content-plan generation.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for generation")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
