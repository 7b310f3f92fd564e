package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"gemini_api_key": "gem-key",
		"database_url": "postgres://localhost/screener",
		"port": 8080,
		"smtp": {"host": "smtp.example.com", "port": 587}
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/screener", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gem")
	t.Setenv("IDENTITY_API_KEY", "env-identity")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("REPORT_LINK_SECRET", "env-secret")
	t.Setenv("SMTP_HOST", "env-smtp")
	t.Setenv("SMTP_PORT", "2525")

	cfg := &Config{GeminiAPIKey: "file-gem"}
	cfg.ApplyEnv()

	// File values win over the environment.
	assert.Equal(t, "file-gem", cfg.GeminiAPIKey)
	assert.Equal(t, "env-identity", cfg.IdentityAPIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "env-secret", cfg.LinkSecret)
	assert.Equal(t, "env-smtp", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{Port: 8080}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{Port: -1}).Validate())

	cfg := &Config{KeywordFile: filepath.Join(t.TempDir(), "nope.json")}
	assert.Error(t, cfg.Validate())

	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	assert.NoError(t, (&Config{KeywordFile: path}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	flags := Config{GeminiAPIKey: "flag-gem", Port: 9090}
	defaults := Config{
		GeminiAPIKey: "file-gem",
		DatabaseURL:  "postgres://file/db",
		Port:         8080,
		Verbose:      true,
	}

	merged := flags.MergeWithDefaults(defaults)
	assert.Equal(t, "flag-gem", merged.GeminiAPIKey)
	assert.Equal(t, "postgres://file/db", merged.DatabaseURL)
	assert.Equal(t, 9090, merged.Port)
	assert.True(t, merged.Verbose)
}
