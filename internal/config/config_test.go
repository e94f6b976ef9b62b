package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/fanpost.db", cfg.DatabasePath)
		assert.Equal(t, "https://api.fanvue.com", cfg.FanvueAPIBase)
		assert.Equal(t, "2025-06-26", cfg.FanvueAPIVersion)
		assert.Equal(t, 120*time.Second, cfg.UploadTimeout)
		assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
		assert.Equal(t, "exports", cfg.ExportDir)
		assert.Equal(t, ":7860", cfg.ListenAddr)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/other.db")
		t.Setenv("FANVUE_API_BASE", "http://localhost:9999")
		t.Setenv("UPLOAD_TIMEOUT", "5m")
		t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
		assert.Equal(t, "http://localhost:9999", cfg.FanvueAPIBase)
		assert.Equal(t, 5*time.Minute, cfg.UploadTimeout)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("UPLOAD_TIMEOUT", "not-a-duration")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPLOAD_TIMEOUT")
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabasePath:  "data/fanpost.db",
		FanvueAPIBase: "https://api.fanvue.com",
		ListenAddr:    ":7860",
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := valid
		cfg.DatabasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing api base", func(t *testing.T) {
		cfg := valid
		cfg.FanvueAPIBase = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("generation requires openai key", func(t *testing.T) {
		cfg := valid
		require.Error(t, cfg.ValidateForGeneration())

		cfg.OpenAIAPIKey = "sk-test"
		assert.NoError(t, cfg.ValidateForGeneration())
	})

	t.Run("serve requires listen addr", func(t *testing.T) {
		cfg := valid
		cfg.ListenAddr = ""
		require.Error(t, cfg.ValidateForServe())

		cfg.ListenAddr = ":7860"
		assert.NoError(t, cfg.ValidateForServe())
	})
}
