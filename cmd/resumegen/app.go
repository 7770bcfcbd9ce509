package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/compiler"
	"github.com/achint227/Resume-Generator/internal/config"
	"github.com/achint227/Resume-Generator/internal/generator"
	"github.com/achint227/Resume-Generator/internal/logging"
	"github.com/achint227/Resume-Generator/internal/storage/backend"
)

// app is the wired object graph shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	backends *backend.Backends
	gen      *generator.Generator
}

// loadConfig reads configuration. Commands that print results keep stdout
// for their output and log to stderr.
func loadConfig(keepStdout bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	if keepStdout && (logCfg.Output == "" || logCfg.Output == "stdout") {
		logCfg.Output = "stderr"
	}
	return cfg, logging.New(logCfg), nil
}

// bootstrap loads configuration and opens the configured backends.
func bootstrap(ctx context.Context, keepStdout bool) (*app, error) {
	cfg, logger, err := loadConfig(keepStdout)
	if err != nil {
		return nil, err
	}

	backends, err := backend.Open(ctx, cfg.Database, cfg.Cache)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Debug("storage opened",
		zap.String("resumes", string(backends.Kind)),
		zap.String("cache", string(backends.CacheKind)),
	)

	latex := compiler.NewLaTeX(compiler.Config{
		Binary:  cfg.LaTeX.Binary,
		Timeout: cfg.LaTeX.Timeout,
	})
	gen := generator.New(backends.Resumes, backends.Cache, latex, generator.Config{
		AssetsDir: cfg.LaTeX.AssetsDir,
		OutputDir: cfg.Output.Dir,
		Verify:    cfg.LaTeX.Verify,
	}, logger)

	return &app{cfg: cfg, logger: logger, backends: backends, gen: gen}, nil
}

func (a *app) Close() {
	if err := a.backends.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}
