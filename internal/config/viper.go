package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Sheets struct {
		SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
		DataRange       string `mapstructure:"data_range" yaml:"data_range"`
		AppendRange     string `mapstructure:"append_range" yaml:"append_range"`
		TokenFile       string `mapstructure:"token_file" yaml:"token_file"`
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Passphrases struct {
		// Fallback passphrases tried automatically after the explicit one.
		Fallback []string `mapstructure:"fallback" yaml:"-"`
	} `mapstructure:"passphrases" yaml:"passphrases"`

	Dedupe struct {
		Mode       string `mapstructure:"mode" yaml:"mode"` // "fuzzy" or "strict"
		MinOverlap int    `mapstructure:"min_overlap" yaml:"min_overlap"`
	} `mapstructure:"dedupe" yaml:"dedupe"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budget")
	v.AddConfigPath(".budget")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Well-known unprefixed variables kept for compatibility with the
	// hosted deployment of the original spreadsheet sync.
	if err := v.BindEnv("sheets.spreadsheet_id", "BUDGET_SHEETS_SPREADSHEET_ID", "SPREADSHEET_ID"); err != nil {
		fmt.Printf("Warning: failed to bind SPREADSHEET_ID environment variable: %v\n", err)
	}
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("passphrases.fallback", "BUDGET_PASSPHRASES"); err != nil {
		fmt.Printf("Warning: failed to bind BUDGET_PASSPHRASES environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env-sourced fallback lists arrive comma-separated and may carry
	// padding around the entries.
	if len(config.Passphrases.Fallback) > 0 {
		config.Passphrases.Fallback = splitAndTrim(strings.Join(config.Passphrases.Fallback, ","))
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("sheets.spreadsheet_id", "")
	// Ledger convention: header/title block above row 11, data in B..J.
	v.SetDefault("sheets.data_range", "B11:J999")
	v.SetDefault("sheets.append_range", "B11:J")
	v.SetDefault("sheets.token_file", "token.json")
	v.SetDefault("sheets.credentials_file", "credentials.json")

	v.SetDefault("passphrases.fallback", []string{})

	v.SetDefault("dedupe.mode", "fuzzy")
	v.SetDefault("dedupe.min_overlap", 2)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Dedupe.Mode != "fuzzy" && config.Dedupe.Mode != "strict" {
		return fmt.Errorf("invalid dedupe mode: %s (must be 'fuzzy' or 'strict')", config.Dedupe.Mode)
	}

	if config.Dedupe.MinOverlap < 1 {
		return fmt.Errorf("dedupe.min_overlap must be at least 1, got: %d", config.Dedupe.MinOverlap)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures the global logger from the Config
// struct rather than raw environment variables.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if config.Log.Format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return Logger
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
