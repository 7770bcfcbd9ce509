// Package backend resolves the configured storage URLs into concrete
// repositories once at process start.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/achint227/Resume-Generator/internal/config"
	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/storage/memory"
	"github.com/achint227/Resume-Generator/internal/storage/postgres"
	"github.com/achint227/Resume-Generator/internal/storage/redis"
	"github.com/achint227/Resume-Generator/internal/storage/sqlite"
)

// Kind names a résumé store implementation.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindMemory   Kind = "memory"
	KindRedis    Kind = "redis"
)

// Backends is the resolved storage wiring handed to the generator and the
// HTTP layer.
type Backends struct {
	Resumes   storage.ResumeRepository
	Cache     storage.PDFCacheRepository
	Kind      Kind
	CacheKind Kind

	migrate []func(context.Context) error
	closers []func() error
}

// ResumeKind classifies a database URL. An empty URL selects SQLite.
func ResumeKind(url string) (Kind, error) {
	switch {
	case url == "":
		return KindSQLite, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return KindPostgres, nil
	case strings.HasPrefix(url, "memory://"):
		return KindMemory, nil
	default:
		return "", &config.ConfigurationError{Key: "database.url", Message: fmt.Sprintf("unsupported scheme in %q", redact(url))}
	}
}

// CacheKind classifies a cache URL. An empty URL keeps the cache in the
// résumé store.
func CacheKind(url string) (Kind, bool, error) {
	switch {
	case url == "":
		return "", false, nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return KindRedis, true, nil
	default:
		return "", false, &config.ConfigurationError{Key: "cache.url", Message: fmt.Sprintf("unsupported scheme in %q", redact(url))}
	}
}

// redact drops credentials from a URL before it reaches an error message.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}

// Open connects the backends selected by cfg. Call Close when done.
func Open(ctx context.Context, cfg config.DatabaseConfig, cacheCfg config.CacheConfig) (*Backends, error) {
	kind, err := ResumeKind(cfg.URL)
	if err != nil {
		return nil, err
	}
	cacheKind, separateCache, err := CacheKind(cacheCfg.URL)
	if err != nil {
		return nil, err
	}

	b := &Backends{Kind: kind, CacheKind: kind}
	switch kind {
	case KindSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.Resumes, b.Cache = s.Resumes(), s.Cache()
		b.migrate = append(b.migrate, s.Migrate)
		b.closers = append(b.closers, s.Close)
	case KindPostgres:
		s, err := postgres.Connect(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, s.Close)
		if err := s.Migrate(ctx); err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Resumes, b.Cache = s.Resumes(), s.Cache()
		b.migrate = append(b.migrate, s.Migrate)
	case KindMemory:
		b.Resumes, b.Cache = memory.NewResumeRepository(), memory.NewPDFCacheRepository()
	}

	if separateCache {
		c, err := redis.Connect(ctx, cacheCfg.URL)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Cache, b.CacheKind = c, cacheKind
		b.closers = append(b.closers, c.Close)
	}
	return b, nil
}

// Migrate reapplies schema creation on every relational backend. It is
// idempotent.
func (b *Backends) Migrate(ctx context.Context) error {
	for _, m := range b.migrate {
		if err := m(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every opened connection.
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
