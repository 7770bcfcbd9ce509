// Package config loads service configuration from an optional file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	LaTeX     LaTeXConfig
	Output    OutputConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	Debug          bool
}

// LaTeXConfig holds typesetter settings.
type LaTeXConfig struct {
	Binary    string
	Timeout   time.Duration
	AssetsDir string // parent of the per-template working directories
	Verify    bool   // parse every produced PDF before caching it
}

// OutputConfig holds where finished artifacts are written.
type OutputConfig struct {
	Dir string
}

// DatabaseConfig selects the résumé store. An empty URL selects SQLite at
// SQLitePath.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

// CacheConfig optionally moves the PDF cache to Redis.
type CacheConfig struct {
	URL string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RateLimitConfig throttles the routes that invoke the typesetter.
type RateLimitConfig struct {
	Enabled          bool
	CompilePerMinute int
	Burst            int
}

// ConfigurationError reports an invalid or unsupported setting.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Key, e.Message)
}

// env maps every key to its environment variable.
var env = map[string]string{
	"server.port":            "PORT",
	"server.allowed_origins": "ALLOWED_ORIGINS",
	"server.debug":           "DEBUG",
	"latex.binary":           "LATEX_BINARY",
	"latex.timeout":          "LATEX_TIMEOUT",
	"latex.assets_dir":       "ASSETS_DIR",
	"latex.verify":           "VERIFY_PDF",
	"output.dir":             "OUTPUT_DIR",
	"database.url":           "DATABASE_URL",
	"database.sqlite_path":   "SQLITE_PATH",
	"cache.url":              "CACHE_URL",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
	"log.output":             "LOG_OUTPUT",
	"ratelimit.enabled":      "RATE_LIMIT_ENABLED",
	"ratelimit.compile_rpm":  "RATE_LIMIT_COMPILE_RPM",
	"ratelimit.burst":        "RATE_LIMIT_BURST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("server.debug", false)
	v.SetDefault("latex.binary", "xelatex")
	v.SetDefault("latex.timeout", 60)
	v.SetDefault("latex.assets_dir", "assets/latex")
	v.SetDefault("latex.verify", false)
	v.SetDefault("output.dir", "output")
	v.SetDefault("database.url", "")
	v.SetDefault("database.sqlite_path", "resumes.db")
	v.SetDefault("cache.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.compile_rpm", 30)
	v.SetDefault("ratelimit.burst", 5)
}

// Load reads configuration. Priority (highest to lowest):
// 1. Environment variables (PORT, DATABASE_URL, ...)
// 2. The config file at path, when path is not empty
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			AllowedOrigins: stringList(v.Get("server.allowed_origins")),
			Debug:          v.GetBool("server.debug"),
		},
		LaTeX: LaTeXConfig{
			Binary:    v.GetString("latex.binary"),
			Timeout:   time.Duration(v.GetInt("latex.timeout")) * time.Second,
			AssetsDir: v.GetString("latex.assets_dir"),
			Verify:    v.GetBool("latex.verify"),
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Database: DatabaseConfig{
			URL:        strings.TrimSpace(v.GetString("database.url")),
			SQLitePath: v.GetString("database.sqlite_path"),
		},
		Cache: CacheConfig{
			URL: strings.TrimSpace(v.GetString("cache.url")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		RateLimit: RateLimitConfig{
			Enabled:          v.GetBool("ratelimit.enabled"),
			CompilePerMinute: v.GetInt("ratelimit.compile_rpm"),
			Burst:            v.GetInt("ratelimit.burst"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringList accepts a comma separated string (environment) or a list
// (config file).
func stringList(raw any) []string {
	var items []string
	switch val := raw.(type) {
	case string:
		items = strings.Split(val, ",")
	case []string:
		items = val
	case []any:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, &ConfigurationError{Key: "server.port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port)})
	}
	if c.LaTeX.Binary == "" {
		errs = append(errs, &ConfigurationError{Key: "latex.binary", Message: "must not be empty"})
	}
	if c.LaTeX.Timeout < time.Second {
		errs = append(errs, &ConfigurationError{Key: "latex.timeout", Message: "must be at least 1 second"})
	}
	if c.LaTeX.AssetsDir == "" {
		errs = append(errs, &ConfigurationError{Key: "latex.assets_dir", Message: "must not be empty"})
	}
	if c.Output.Dir == "" {
		errs = append(errs, &ConfigurationError{Key: "output.dir", Message: "must not be empty"})
	}
	if c.Database.URL == "" && c.Database.SQLitePath == "" {
		errs = append(errs, &ConfigurationError{Key: "database.sqlite_path", Message: "must not be empty when database.url is unset"})
	}
	if c.RateLimit.Enabled && c.RateLimit.CompilePerMinute < 1 {
		errs = append(errs, &ConfigurationError{Key: "ratelimit.compile_rpm", Message: "must be positive when rate limiting is enabled"})
	}
	return errors.Join(errs...)
}
