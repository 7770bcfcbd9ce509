// Package redis stores the PDF cache in Redis so that several server
// instances sharing one output volume also share cache entries.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/achint227/Resume-Generator/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "pdf_cache:"

const scanBatchSize = 100

// PDFCacheRepository implements storage.PDFCacheRepository on Redis hashes.
type PDFCacheRepository struct {
	client *goredis.Client
}

// Connect parses a redis:// or rediss:// URL and verifies the connection.
func Connect(ctx context.Context, url string) (*PDFCacheRepository, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client) *PDFCacheRepository {
	return &PDFCacheRepository{client: client}
}

// Close closes the client.
func (c *PDFCacheRepository) Close() error {
	return c.client.Close()
}

// Key returns the hash key holding the entry for k.
func Key(k storage.CacheKey) string {
	return KeyPrefix + k.ResumeID + ":" + k.Template + ":" + k.Order
}

func (c *PDFCacheRepository) Get(ctx context.Context, key storage.CacheKey, hash string) (string, bool, error) {
	fields, err := c.client.HMGet(ctx, Key(key), "content_hash", "file_path").Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, storage.Wrap("cache_get", err)
	}
	storedHash, _ := fields[0].(string)
	path, _ := fields[1].(string)
	if storedHash == "" || storedHash != hash {
		return "", false, nil
	}
	return path, true, nil
}

func (c *PDFCacheRepository) Set(ctx context.Context, key storage.CacheKey, hash, path string) error {
	err := c.client.HSet(ctx, Key(key),
		"content_hash", hash,
		"file_path", path,
		"created_at", time.Now().UTC().Format(time.RFC3339),
	).Err()
	return storage.Wrap("cache_set", err)
}

func (c *PDFCacheRepository) Clear(ctx context.Context, resumeID string) error {
	pattern := KeyPrefix + "*"
	if resumeID != "" {
		pattern = KeyPrefix + resumeID + ":*"
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return storage.Wrap("cache_clear", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return storage.Wrap("cache_clear", err)
			}
		}
		// Redis returns a zero cursor when the scan is complete.
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
