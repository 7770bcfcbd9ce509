// Package storagetest holds contract tests that every storage backend runs
// against its own repository implementations.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleResume returns a small valid document with the given names.
func SampleResume(resumeName, userName string) *types.Resume {
	return (&types.Resume{
		Name: resumeName,
		BasicInfo: types.BasicInfo{
			Name:  userName,
			Email: "j@x.com",
			Phone: "555-1234",
		},
		Education: []types.Education{{University: "U", Degree: "BS"}},
		Projects: []types.Project{{
			Title: "X",
			Tools: []string{"Go"},
			Repo:  "https://github.com/j/x",
		}},
		Keywords: types.Keywords{"Go"},
	}).Normalize()
}

// RunResumeRepository exercises the ResumeRepository contract. newRepo must
// return an empty repository.
func RunResumeRepository(t *testing.T, newRepo func(t *testing.T) storage.ResumeRepository) {
	ctx := context.Background()

	t.Run("create and get by id", func(t *testing.T) {
		repo := newRepo(t)
		id, err := repo.Create(ctx, SampleResume("backend", "Jane Doe"))
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "backend", got.Name)
		assert.Equal(t, "Jane Doe", got.BasicInfo.Name)
		assert.Equal(t, types.Phone("555-1234"), got.BasicInfo.Phone)
		assert.Equal(t, "https://github.com/j/x", got.Projects[0].Repo)
		assert.Equal(t, types.Keywords{"Go"}, got.Keywords)
		assert.NotNil(t, got.Experiences, "lists are normalized on read")
	})

	t.Run("get by id missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, "999999")
		assertNotFound(t, err)
	})

	t.Run("get all", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = repo.Create(ctx, SampleResume("a", "Jane Doe"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, SampleResume("b", "John Roe"))
		require.NoError(t, err)

		all, err = repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].Name)
		assert.Equal(t, "b", all[1].Name)
	})

	t.Run("get by user name", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, SampleResume("a", "Jane Doe"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, SampleResume("b", "Jane Doe"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, SampleResume("c", "John Roe"))
		require.NoError(t, err)

		docs, err := repo.GetByName(ctx, "Jane Doe")
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		_, err = repo.GetByName(ctx, "Nobody")
		assertNotFound(t, err)
	})

	t.Run("get by resume name", func(t *testing.T) {
		repo := newRepo(t)
		id, err := repo.Create(ctx, SampleResume("backend", "Jane Doe"))
		require.NoError(t, err)

		got, err := repo.GetByResumeName(ctx, "backend")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)

		_, err = repo.GetByResumeName(ctx, "frontend")
		assertNotFound(t, err)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		id, err := repo.Create(ctx, SampleResume("backend", "Jane Doe"))
		require.NoError(t, err)

		changed := SampleResume("backend-v2", "Jane Doe")
		changed.BasicInfo.Summary = "Go engineer"
		ok, err := repo.Update(ctx, id, changed)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "backend-v2", got.Name)
		assert.Equal(t, "Go engineer", got.BasicInfo.Summary)

		ok, err = repo.Update(ctx, "999999", changed)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		id, err := repo.Create(ctx, SampleResume("backend", "Jane Doe"))
		require.NoError(t, err)

		ok, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, id)
		assertNotFound(t, err)

		ok, err = repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stored copy is isolated from caller", func(t *testing.T) {
		repo := newRepo(t)
		doc := SampleResume("backend", "Jane Doe")
		id, err := repo.Create(ctx, doc)
		require.NoError(t, err)
		doc.Projects[0].Title = "mutated"

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "X", got.Projects[0].Title)
	})
}

// RunPDFCacheRepository exercises the PDFCacheRepository contract. newCache
// must return an empty cache.
func RunPDFCacheRepository(t *testing.T, newCache func(t *testing.T) storage.PDFCacheRepository) {
	ctx := context.Background()
	key := storage.CacheKey{ResumeID: "1", Template: "classic", Order: "pwe"}

	t.Run("miss on empty", func(t *testing.T) {
		cache := newCache(t)
		_, ok, err := cache.Get(ctx, key, "abcd1234")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		cache := newCache(t)
		require.NoError(t, cache.Set(ctx, key, "abcd1234", "/out/a.pdf"))

		path, ok, err := cache.Get(ctx, key, "abcd1234")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/out/a.pdf", path)

		_, ok, err = cache.Get(ctx, key, "ffff0000")
		require.NoError(t, err)
		assert.False(t, ok, "a different hash is a miss")
	})

	t.Run("set replaces prior entry", func(t *testing.T) {
		cache := newCache(t)
		require.NoError(t, cache.Set(ctx, key, "abcd1234", "/out/a.pdf"))
		require.NoError(t, cache.Set(ctx, key, "ffff0000", "/out/b.pdf"))

		_, ok, err := cache.Get(ctx, key, "abcd1234")
		require.NoError(t, err)
		assert.False(t, ok)

		path, ok, err := cache.Get(ctx, key, "ffff0000")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/out/b.pdf", path)
	})

	t.Run("keys are independent", func(t *testing.T) {
		cache := newCache(t)
		other := storage.CacheKey{ResumeID: "1", Template: "classic", Order: "epw"}
		require.NoError(t, cache.Set(ctx, key, "abcd1234", "/out/a.pdf"))

		_, ok, err := cache.Get(ctx, other, "abcd1234")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("clear one resume", func(t *testing.T) {
		cache := newCache(t)
		other := storage.CacheKey{ResumeID: "2", Template: "classic", Order: "pwe"}
		require.NoError(t, cache.Set(ctx, key, "abcd1234", "/out/a.pdf"))
		require.NoError(t, cache.Set(ctx, other, "abcd1234", "/out/b.pdf"))

		require.NoError(t, cache.Clear(ctx, "1"))

		_, ok, err := cache.Get(ctx, key, "abcd1234")
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = cache.Get(ctx, other, "abcd1234")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("clear all", func(t *testing.T) {
		cache := newCache(t)
		other := storage.CacheKey{ResumeID: "2", Template: "russel", Order: "wep"}
		require.NoError(t, cache.Set(ctx, key, "abcd1234", "/out/a.pdf"))
		require.NoError(t, cache.Set(ctx, other, "abcd1234", "/out/b.pdf"))

		require.NoError(t, cache.Clear(ctx, ""))

		for _, k := range []storage.CacheKey{key, other} {
			_, ok, err := cache.Get(ctx, k, "abcd1234")
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "expected not found, got %v", err)
	var nf *storage.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
