package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "B11:J999", cfg.Sheets.DataRange)
	assert.Equal(t, "B11:J", cfg.Sheets.AppendRange)
	assert.Equal(t, "fuzzy", cfg.Dedupe.Mode)
	assert.Equal(t, 2, cfg.Dedupe.MinOverlap)
	assert.False(t, cfg.AI.Enabled)
	assert.Empty(t, cfg.Passphrases.Fallback)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Setenv("BUDGET_LOG_LEVEL", "debug")
	t.Setenv("BUDGET_DEDUPE_MODE", "strict")
	t.Setenv("SPREADSHEET_ID", "sheet-from-env")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "strict", cfg.Dedupe.Mode)
	assert.Equal(t, "sheet-from-env", cfg.Sheets.SpreadsheetID)
}

func TestInitializeConfigPassphraseListFromEnv(t *testing.T) {
	t.Setenv("BUDGET_PASSPHRASES", "first, second,third")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, cfg.Passphrases.Fallback)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("BUDGET_LOG_LEVEL", "verbose")
	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigRequiresKeyWhenAIEnabled(t *testing.T) {
	t.Setenv("BUDGET_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")
	_, err := InitializeConfig()
	assert.Error(t, err)

	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestValidateConfigDedupe(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	cfg.Dedupe.Mode = "approximate"
	assert.Error(t, validateConfig(cfg))

	cfg.Dedupe.Mode = "strict"
	cfg.Dedupe.MinOverlap = 0
	assert.Error(t, validateConfig(cfg))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BUDGET_TEST_KEY", "present")
	assert.Equal(t, "present", GetEnv("BUDGET_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BUDGET_TEST_MISSING_KEY", "fallback"))
}
