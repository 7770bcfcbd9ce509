package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range env {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "xelatex", cfg.LaTeX.Binary)
	assert.Equal(t, 60*time.Second, cfg.LaTeX.Timeout)
	assert.Equal(t, "assets/latex", cfg.LaTeX.AssetsDir)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "resumes.db", cfg.Database.SQLitePath)
	assert.Empty(t, cfg.Cache.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, RateLimitConfig{Enabled: true, CompilePerMinute: 30, Burst: 5}, cfg.RateLimit)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("LATEX_TIMEOUT", "5")
	t.Setenv("DATABASE_URL", " postgres://u:p@localhost/db ")
	t.Setenv("CACHE_URL", "redis://localhost:6379/0")
	t.Setenv("VERIFY_PDF", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.LaTeX.Timeout)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.URL)
	assert.True(t, cfg.LaTeX.Verify)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  allowed_origins: ["http://x.example"]
latex:
  binary: pdflatex
output:
  dir: /srv/out
`), 0644))
	t.Setenv("OUTPUT_DIR", "/tmp/override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, []string{"http://x.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "pdflatex", cfg.LaTeX.Binary)
	assert.Equal(t, "/tmp/override", cfg.Output.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8000},
			LaTeX:    LaTeXConfig{Binary: "xelatex", Timeout: time.Minute, AssetsDir: "assets"},
			Output:   OutputConfig{Dir: "out"},
			Database: DatabaseConfig{SQLitePath: "db"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"empty binary", func(c *Config) { c.LaTeX.Binary = "" }, "latex.binary"},
		{"short timeout", func(c *Config) { c.LaTeX.Timeout = 500 * time.Millisecond }, "latex.timeout"},
		{"empty output", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"no sqlite path", func(c *Config) { c.Database.SQLitePath = "" }, "database.sqlite_path"},
		{"rate limit without rate", func(c *Config) { c.RateLimit.Enabled = true }, "ratelimit.compile_rpm"},
	}

	assert.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.key, cerr.Key)
		})
	}
}
