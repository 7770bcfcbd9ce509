// Package storage defines the persistence contracts consumed by the
// generator and the HTTP layer, shared by every backend.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/achint227/Resume-Generator/internal/types"
)

// ResumeRepository stores résumé documents.
type ResumeRepository interface {
	// GetAll returns every stored résumé.
	GetAll(ctx context.Context) ([]*types.Resume, error)
	// GetByID returns a *NotFoundError when id has no record.
	GetByID(ctx context.Context, id string) (*types.Resume, error)
	// GetByName returns the résumés whose basic_info.name equals userName.
	GetByName(ctx context.Context, userName string) ([]*types.Resume, error)
	// GetByResumeName returns the résumé whose document name equals name.
	GetByResumeName(ctx context.Context, name string) (*types.Resume, error)
	// Create stores doc and returns the new id.
	Create(ctx context.Context, doc *types.Resume) (string, error)
	// Update replaces the document stored under id. It reports false when
	// id does not exist.
	Update(ctx context.Context, id string, doc *types.Resume) (bool, error)
	// Delete removes id. It reports false when id does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// CacheKey identifies one compiled artifact slot. There is at most one
// entry per key; a new hash replaces the old entry.
type CacheKey struct {
	ResumeID string
	Template string
	Order    string
}

// CacheEntry is one row of the PDF cache.
type CacheEntry struct {
	CacheKey
	ContentHash string
	FilePath    string
	CreatedAt   time.Time
}

// PDFCacheRepository maps a cache key and content hash to a compiled file.
type PDFCacheRepository interface {
	// Get returns the stored path only when the stored hash equals hash.
	// Any mismatch, including no entry, reports ok=false.
	Get(ctx context.Context, key CacheKey, hash string) (path string, ok bool, err error)
	// Set upserts the entry for key.
	Set(ctx context.Context, key CacheKey, hash, path string) error
	// Clear removes the entries of resumeID, or all entries when resumeID
	// is empty.
	Clear(ctx context.Context, resumeID string) error
}

// MarshalDocument encodes doc for a backend that stores the id separately.
func MarshalDocument(doc *types.Resume) ([]byte, error) {
	stored := doc.Clone().Normalize()
	stored.ID = ""
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes a stored document and attaches id.
func UnmarshalDocument(id string, data []byte) (*types.Resume, error) {
	doc, err := types.ParseResume(data)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return doc, nil
}
