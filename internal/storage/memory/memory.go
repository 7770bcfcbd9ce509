// Package memory implements the storage contracts in process memory. It
// backs the memory:// database URL and the generator and server tests.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
)

// ResumeRepository keeps résumés in insertion order.
type ResumeRepository struct {
	mu     sync.RWMutex
	nextID int
	ids    []string
	docs   map[string]*types.Resume
}

// NewResumeRepository creates an empty repository.
func NewResumeRepository() *ResumeRepository {
	return &ResumeRepository{docs: make(map[string]*types.Resume)}
}

func (r *ResumeRepository) GetAll(ctx context.Context) ([]*types.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*types.Resume, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.docs[id].Clone())
	}
	return out, nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*types.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, storage.ResumeNotFound(id)
	}
	return doc.Clone(), nil
}

func (r *ResumeRepository) GetByName(ctx context.Context, userName string) ([]*types.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*types.Resume
	for _, id := range r.ids {
		if doc := r.docs[id]; doc.BasicInfo.Name == userName {
			out = append(out, doc.Clone())
		}
	}
	if len(out) == 0 {
		return nil, storage.ResumeNotFound(userName)
	}
	return out, nil
}

func (r *ResumeRepository) GetByResumeName(ctx context.Context, name string) (*types.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.ids {
		if doc := r.docs[id]; doc.Name == name {
			return doc.Clone(), nil
		}
	}
	return nil, storage.ResumeNotFound(name)
}

func (r *ResumeRepository) Create(ctx context.Context, doc *types.Resume) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := strconv.Itoa(r.nextID)
	stored := doc.Clone().Normalize()
	stored.ID = id
	r.docs[id] = stored
	r.ids = append(r.ids, id)
	return id, nil
}

func (r *ResumeRepository) Update(ctx context.Context, id string, doc *types.Resume) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	stored := doc.Clone().Normalize()
	stored.ID = id
	r.docs[id] = stored
	return true, nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return true, nil
}

// PDFCacheRepository is a map keyed by (resume, template, order).
type PDFCacheRepository struct {
	mu      sync.RWMutex
	entries map[storage.CacheKey]storage.CacheEntry
	now     func() time.Time
}

// NewPDFCacheRepository creates an empty cache.
func NewPDFCacheRepository() *PDFCacheRepository {
	return &PDFCacheRepository{
		entries: make(map[storage.CacheKey]storage.CacheEntry),
		now:     time.Now,
	}
}

func (c *PDFCacheRepository) Get(ctx context.Context, key storage.CacheKey, hash string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || entry.ContentHash != hash {
		return "", false, nil
	}
	return entry.FilePath, true, nil
}

func (c *PDFCacheRepository) Set(ctx context.Context, key storage.CacheKey, hash, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = storage.CacheEntry{
		CacheKey:    key,
		ContentHash: hash,
		FilePath:    path,
		CreatedAt:   c.now(),
	}
	return nil
}

func (c *PDFCacheRepository) Clear(ctx context.Context, resumeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resumeID == "" {
		c.entries = make(map[storage.CacheKey]storage.CacheEntry)
		return nil
	}
	for key := range c.entries {
		if key.ResumeID == resumeID {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of cached entries.
func (c *PDFCacheRepository) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
