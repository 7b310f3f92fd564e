// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rented123/tenant-screener/internal/mailer"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values fall back to environment variables or flags.
type Config struct {
	// Provider credentials
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	IdentityAPIKey string `json:"identity_api_key,omitempty"`

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"`

	// Report links
	LinkSecret string `json:"link_secret,omitempty"`
	BaseURL    string `json:"base_url,omitempty"` // public URL the server is reachable at

	// Server
	Port int `json:"port,omitempty"`

	// Risk keyword overrides
	KeywordFile string `json:"keyword_file,omitempty"`

	// Mail
	SMTP mailer.Config `json:"smtp,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv fills empty fields from the environment. File values win over
// environment values; flags are merged later and win over both.
func (c *Config) ApplyEnv() {
	setIfEmpty(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setIfEmpty(&c.IdentityAPIKey, "IDENTITY_API_KEY")
	setIfEmpty(&c.DatabaseURL, "DATABASE_URL")
	setIfEmpty(&c.LinkSecret, "REPORT_LINK_SECRET")
	setIfEmpty(&c.BaseURL, "BASE_URL")
	setIfEmpty(&c.SMTP.Host, "SMTP_HOST")
	setIfEmpty(&c.SMTP.Username, "SMTP_USERNAME")
	setIfEmpty(&c.SMTP.Password, "SMTP_PASSWORD")
	setIfEmpty(&c.SMTP.From, "SMTP_FROM")
	if c.SMTP.Port == 0 {
		if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
			c.SMTP.Port = v
		}
	}
}

func setIfEmpty(dst *string, envKey string) {
	if *dst == "" {
		*dst = os.Getenv(envKey)
	}
}

// Validate checks value ranges and referenced files. Required credentials
// are checked at the point of use so read-only commands run without them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.KeywordFile != "" {
		if _, err := os.Stat(c.KeywordFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: keyword file not found: %s", c.KeywordFile)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.IdentityAPIKey == "" {
		result.IdentityAPIKey = defaults.IdentityAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LinkSecret == "" {
		result.LinkSecret = defaults.LinkSecret
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.KeywordFile == "" {
		result.KeywordFile = defaults.KeywordFile
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SMTP.Host == "" {
		result.SMTP = defaults.SMTP
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	return result
}
