//go:build integration

package redis

import (
	"context"
	"os"
	"testing"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/storage/storagetest"
	"github.com/stretchr/testify/require"
)

// Set TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run these tests.
// The selected database is flushed of cache keys before each test.

func getTestCache(t *testing.T) *PDFCacheRepository {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	c, err := Connect(ctx, url)
	require.NoError(t, err)
	require.NoError(t, c.Clear(ctx, ""))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestIntegration_PDFCacheRepository(t *testing.T) {
	storagetest.RunPDFCacheRepository(t, func(t *testing.T) storage.PDFCacheRepository {
		return getTestCache(t)
	})
}
